package patients

import (
	"fmt"
	"math/rand"
	"testing"

	"nhscribe-service/internal/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int {
	return &v
}

func TestMatch_JaneSmithExample(t *testing.T) {
	registry := []models.Patient{
		{ID: "1", Name: "jane smith", Age: intPtr(54), Address: "10 Main St"},
	}

	patient, found := Match(models.PatientQuery{Name: "Jane Smith", Age: intPtr(54)}, registry)
	require.True(t, found)
	assert.Equal(t, models.ExternalID("1"), patient.ID)

	patient, found = Match(models.PatientQuery{Name: "Jane Smith", Age: intPtr(55)}, registry)
	assert.False(t, found)
	assert.Nil(t, patient)
}

func TestMatch_Filters(t *testing.T) {
	registry := []models.Patient{
		{ID: "1", Name: "John Doe", Age: intPtr(40), Address: "1 High Street, Leeds"},
		{ID: "2", Name: "John Doe", Age: intPtr(41), Address: "22 Low Road, York"},
		{ID: "3", Name: "Mary Major", Age: nil, Address: ""},
	}

	t.Run("Name is trimmed and case-insensitive", func(t *testing.T) {
		patient, found := Match(models.PatientQuery{Name: "  JOHN doe "}, registry)
		require.True(t, found)
		assert.Equal(t, models.ExternalID("1"), patient.ID, "first match in snapshot order wins")
	})

	t.Run("Age narrows the match", func(t *testing.T) {
		patient, found := Match(models.PatientQuery{Name: "John Doe", Age: intPtr(41)}, registry)
		require.True(t, found)
		assert.Equal(t, models.ExternalID("2"), patient.ID)
	})

	t.Run("Address fragment is a case-insensitive substring", func(t *testing.T) {
		patient, found := Match(models.PatientQuery{Name: "John Doe", Address: " york"}, registry)
		require.True(t, found)
		assert.Equal(t, models.ExternalID("2"), patient.ID)
	})

	t.Run("Blank address is not a filter", func(t *testing.T) {
		_, found := Match(models.PatientQuery{Name: "Mary Major", Address: "   "}, registry)
		assert.True(t, found)
	})

	t.Run("Candidate without age never matches an age query", func(t *testing.T) {
		_, found := Match(models.PatientQuery{Name: "Mary Major", Age: intPtr(30)}, registry)
		assert.False(t, found)
	})

	t.Run("Partial name is not a match", func(t *testing.T) {
		_, found := Match(models.PatientQuery{Name: "John"}, registry)
		assert.False(t, found)
	})

	t.Run("Empty snapshot", func(t *testing.T) {
		_, found := Match(models.PatientQuery{Name: "John Doe"}, nil)
		assert.False(t, found)
	})
}

// A patient is returned iff some entry satisfies every active filter.
func TestMatch_AgreesWithBruteForce(t *testing.T) {
	names := []string{"Ann Lee", "ann lee ", "Bob Ray", "Cy Twombly"}
	addresses := []string{"", "1 Elm St", "2 Oak Ave, Bath", "ELM court"}
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		snapshot := make([]models.Patient, rng.Intn(6))
		for j := range snapshot {
			snapshot[j] = models.Patient{
				ID:      models.ExternalID(fmt.Sprintf("%d", j)),
				Name:    names[rng.Intn(len(names))],
				Address: addresses[rng.Intn(len(addresses))],
			}
			if rng.Intn(3) > 0 {
				snapshot[j].Age = intPtr(30 + rng.Intn(3))
			}
		}
		query := models.PatientQuery{Name: names[rng.Intn(len(names))]}
		if rng.Intn(2) == 0 {
			query.Age = intPtr(30 + rng.Intn(3))
		}
		if rng.Intn(2) == 0 {
			query.Address = []string{"elm", "bath", " ", "oak ave"}[rng.Intn(4)]
		}

		expectedIndex := -1
		for j, candidate := range snapshot {
			if normalize(candidate.Name) != normalize(query.Name) {
				continue
			}
			if query.Age != nil && (candidate.Age == nil || *candidate.Age != *query.Age) {
				continue
			}
			if normalize(query.Address) != "" && !containsFold(candidate.Address, query.Address) {
				continue
			}
			expectedIndex = j
			break
		}

		patient, found := Match(query, snapshot)
		if expectedIndex < 0 {
			assert.False(t, found)
			continue
		}
		require.True(t, found)
		assert.Equal(t, snapshot[expectedIndex].ID, patient.ID)
	}
}

func containsFold(haystack, needle string) bool {
	h, n := normalize(haystack), normalize(needle)
	for i := 0; i+len(n) <= len(h); i++ {
		if h[i:i+len(n)] == n {
			return true
		}
	}
	return false
}

func TestHydrateForm(t *testing.T) {
	form := models.PatientForm{
		Name:       "jane smith",
		Age:        intPtr(50),
		Address:    "Main",
		Conditions: "asthma",
	}
	match := &models.Patient{
		ID:      "1",
		Name:    "Jane Smith",
		Age:     intPtr(54),
		Sex:     "F",
		Address: "10 Main St",
	}

	hydrated := HydrateForm(form, match)

	assert.Equal(t, models.ExternalID("1"), hydrated.PatientID)
	assert.Equal(t, "Jane Smith", hydrated.Name)
	assert.Equal(t, 54, *hydrated.Age)
	assert.Equal(t, "F", hydrated.Sex)
	assert.Equal(t, "10 Main St", hydrated.Address)
	assert.Equal(t, "asthma", hydrated.Conditions, "blank registry field keeps the form value")
	assert.Equal(t, 50, *form.Age, "input form is not modified")

	assert.Equal(t, form, HydrateForm(form, nil))
}
