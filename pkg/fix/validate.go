package fix

import (
	"fmt"
	"sort"
)

// ValidationError describes an invalid edit.
type ValidationError struct {
	Edit    TextEdit
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid edit [%d:%d]: %s", e.Edit.StartOffset, e.Edit.EndOffset, e.Message)
}

// ValidateEdits checks that all edits have valid ranges for the given
// content length. Returns the first validation error encountered.
func ValidateEdits(edits []TextEdit, contentLen int) error {
	for _, edit := range edits {
		if edit.StartOffset < 0 {
			return &ValidationError{Edit: edit, Message: "start offset is negative"}
		}
		if edit.EndOffset < edit.StartOffset {
			return &ValidationError{Edit: edit, Message: "end offset is before start offset"}
		}
		if edit.EndOffset > contentLen {
			return &ValidationError{
				Edit:    edit,
				Message: fmt.Sprintf("end offset %d exceeds content length %d", edit.EndOffset, contentLen),
			}
		}
	}
	return nil
}

// SortEdits sorts edits by start offset, then by end offset, producing a
// deterministic application order.
func SortEdits(edits []TextEdit) {
	sort.Slice(edits, func(i, j int) bool {
		if edits[i].StartOffset != edits[j].StartOffset {
			return edits[i].StartOffset < edits[j].StartOffset
		}
		return edits[i].EndOffset < edits[j].EndOffset
	})
}

// FilterConflicts removes overlapping edits from a sorted slice. Earlier
// edits (by start position) take precedence; later overlapping edits are
// returned as skipped. Identical duplicates are dropped silently.
func FilterConflicts(edits []TextEdit) (accepted, skipped []TextEdit) {
	if len(edits) == 0 {
		return nil, nil
	}

	accepted = make([]TextEdit, 0, len(edits))
	accepted = append(accepted, edits[0])
	lastEnd := edits[0].EndOffset

	for i := 1; i < len(edits); i++ {
		edit := edits[i]
		if edit == accepted[len(accepted)-1] {
			continue
		}
		if edit.StartOffset >= lastEnd {
			accepted = append(accepted, edit)
			lastEnd = edit.EndOffset
		} else {
			skipped = append(skipped, edit)
		}
	}

	return accepted, skipped
}

// PrepareEdits validates and sorts edits, filtering any that overlap.
// Returns (accepted, skipped, error); error only for validation failures,
// never for conflicts.
func PrepareEdits(edits []TextEdit, contentLen int) ([]TextEdit, []TextEdit, error) {
	if len(edits) == 0 {
		return nil, nil, nil
	}

	if err := ValidateEdits(edits, contentLen); err != nil {
		return nil, nil, err
	}

	sorted := make([]TextEdit, len(edits))
	copy(sorted, edits)
	SortEdits(sorted)

	accepted, skipped := FilterConflicts(sorted)
	return accepted, skipped, nil
}
