package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/aditwb/storysync/internal/client/models"
	"github.com/google/uuid"
)

// add prompts for a new story and submits it. When the API is unreachable
// the story is queued locally; either way the user gets a confirmation.
func (a *App) add(ctx context.Context) {
	description, err := GetSimpleText(a.reader, "Story description", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}

	photoPath, err := GetSimpleText(a.reader, "Photo file path", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	photo, err := os.ReadFile(photoPath)
	if err != nil {
		fmt.Fprintln(a.out, "cannot read photo:", err)
		return
	}

	lat, err := GetOptionalCoordinate(a.reader, "Latitude", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}
	lon, err := GetOptionalCoordinate(a.reader, "Longitude", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}

	outcome, err := a.svc.SubmitNewStory(ctx, models.NewStoryInput{
		Description: description,
		Photo:       photo,
		Lat:         lat,
		Lon:         lon,
		ClientKey:   uuid.NewString(),
	})
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return
	}

	switch outcome {
	case models.OutcomeUploaded:
		fmt.Fprintln(a.out, "Story uploaded.")
	case models.OutcomeQueued:
		fmt.Fprintln(a.out, "Story queued; it will be uploaded once the API is reachable.")
	}
}
