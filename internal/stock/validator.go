// Package stock validates cart contents against authoritative per-size
// inventory counts. Validation is pure with respect to its inputs; fetching
// the inventory snapshot is a repository concern, and the checkout commit
// re-checks availability at write time because a snapshot can go stale
// between validation and commit.
package stock

import (
	"strings"

	"jewelkart/internal/model"
)

// Key identifies a size variant within an inventory snapshot. Size is stored
// normalised so cart labels and catalogue labels that differ only in casing
// or surrounding whitespace still match.
type Key struct {
	ProductID string
	Size      string
}

// NewKey builds a snapshot key with a normalised size label.
func NewKey(productID, size string) Key {
	return Key{ProductID: productID, Size: NormalizeSize(size)}
}

// NormalizeSize lowercases and trims a size label.
func NormalizeSize(size string) string {
	return strings.ToLower(strings.TrimSpace(size))
}

// Snapshot maps size variants to their available quantity at a point in time.
type Snapshot map[Key]int

// Available returns the quantity on hand for a product/size, treating an
// unknown variant as zero.
func (s Snapshot) Available(productID, size string) int {
	return s[NewKey(productID, size)]
}

// Violation records one cart line requesting more than is available.
type Violation struct {
	Line      model.CartLine `json:"line"`
	Requested int            `json:"requested"`
	Available int            `json:"available"`
}

// Result is the outcome of validating a cart against a snapshot. Any
// violation blocks the entire checkout; there is no partial success.
type Result struct {
	Violations []Violation `json:"violations,omitempty"`
}

// OK reports whether every line can be fulfilled.
func (r Result) OK() bool {
	return len(r.Violations) == 0
}

// Validate checks every cart line against the snapshot. A line violates when
// its requested quantity exceeds the available quantity; a product or size
// missing from the snapshot counts as zero available.
func Validate(lines []model.CartLine, snapshot Snapshot) Result {
	var result Result

	for _, line := range lines {
		available := snapshot.Available(line.ProductID, line.Size)
		if line.Quantity > available {
			result.Violations = append(result.Violations, Violation{
				Line:      line,
				Requested: line.Quantity,
				Available: available,
			})
		}
	}

	return result
}
