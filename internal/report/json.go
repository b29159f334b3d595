// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/juanvillada/givelit/pkg/types"
)

// WriteJSON writes the ranked papers as an indented JSON array.
func WriteJSON(w io.Writer, in Input) error {
	papers := in.Papers
	if papers == nil {
		papers = []types.Paper{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(papers); err != nil {
		return fmt.Errorf("encoding json report: %w", err)
	}
	return nil
}
