package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"redress/internal/store"
	"redress/internal/utils"
	"redress/internal/validate"
	"redress/pkg/types"
)

var fakeGrievanceTitles = []string{
	"Broken AC in Room 204",
	"Leaking roof in the library reading hall",
	"Wifi outage in the east hostel block",
	"Unhygienic conditions in the mess kitchen",
	"Streetlights out along the main walkway",
	"Overcrowded shuttle during morning hours",
	"Delayed scholarship disbursement",
	"Water cooler out of service on floor three",
	"Lab equipment missing safety guards",
	"Noise complaints near the study center",
}

var fakeGrievanceDescriptions = []string{
	"The issue has persisted for several days despite repeated verbal reports to the staff on duty.",
	"Multiple residents are affected and the situation is getting worse with each passing day.",
	"This was first noticed last week and no maintenance visit has been scheduled so far.",
	"Requesting urgent attention as the problem disrupts daily schedules for a large group.",
	"The facility team was informed twice already but there has been no visible progress.",
}

var fakeCategories = []string{"academic", "hostel", "infrastructure", "financial", "other"}

type weightedGrievanceStatus struct {
	Status types.GrievanceStatus
	Weight int
}

var weightedStatuses = []weightedGrievanceStatus{
	{Status: types.GrievanceStatusSubmitted, Weight: 35},
	{Status: types.GrievanceStatusUnderReview, Weight: 25},
	{Status: types.GrievanceStatusInProgress, Weight: 20},
	{Status: types.GrievanceStatusResolved, Weight: 15},
	{Status: types.GrievanceStatusClosed, Weight: 5},
}

var fakePriorities = []types.GrievancePriority{
	types.GrievancePriorityLow,
	types.GrievancePriorityMedium,
	types.GrievancePriorityMedium,
	types.GrievancePriorityHigh,
	types.GrievancePriorityUrgent,
}

// SeedFakeGrievances inserts count sample grievances for development
// environments. Returns the created records so callers can print them.
func SeedFakeGrievances(ctx context.Context, grievances store.GrievanceStore, count int) ([]*types.Grievance, error) {
	if count <= 0 {
		return nil, nil
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	created := make([]*types.Grievance, 0, count)
	for i := 0; i < count; i++ {
		anonymous := rng.Intn(100) < 30

		grievance := &types.Grievance{
			ReferenceID: validate.ReferenceID(),
			Title:       fakeGrievanceTitles[rng.Intn(len(fakeGrievanceTitles))],
			Description: fmt.Sprintf("[seed] %s", fakeGrievanceDescriptions[rng.Intn(len(fakeGrievanceDescriptions))]),
			Category:    fakeCategories[rng.Intn(len(fakeCategories))],
			Priority:    fakePriorities[rng.Intn(len(fakePriorities))],
			Status:      pickWeightedStatus(rng),
			Anonymous:   anonymous,
		}

		if !anonymous {
			name := fmt.Sprintf("Seed User %d", i+1)
			grievance.UserID = utils.StringPtr(utils.NanoID())
			grievance.SubmitterName = utils.StringPtr(name)
			grievance.SubmitterEmail = utils.StringPtr(fmt.Sprintf("seed.user%d@example.edu", i+1))
		}

		if err := grievances.CreateGrievance(ctx, grievance); err != nil {
			return created, fmt.Errorf("failed to seed grievance %d: %w", i+1, err)
		}

		created = append(created, grievance)
	}

	return created, nil
}

func pickWeightedStatus(rng *rand.Rand) types.GrievanceStatus {
	total := 0
	for _, ws := range weightedStatuses {
		total += ws.Weight
	}

	roll := rng.Intn(total)
	for _, ws := range weightedStatuses {
		roll -= ws.Weight
		if roll < 0 {
			return ws.Status
		}
	}

	return types.GrievanceStatusSubmitted
}
