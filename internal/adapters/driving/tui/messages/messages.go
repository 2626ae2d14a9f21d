// Package messages defines Bubbletea message types for the picker.
package messages

import (
	"github.com/ff-labs/fff-go/internal/core/domain"
)

// SuggestionsLoaded carries completions for Query back to the model.
type SuggestionsLoaded struct {
	Query       string
	Suggestions []domain.Suggestion
	Err         error
}

// SelectionRecorded is sent once a pick has been tracked. Err holds a
// tracking failure; the pick itself still stands.
type SelectionRecorded struct {
	Suggestion domain.Suggestion
	Err        error
}
