package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var june2024 = func() time.Time { return time.Date(2024, time.June, 30, 12, 0, 0, 0, time.UTC) }

type failingRepo struct{}

func (failingRepo) ListUsers(context.Context) ([]User, error) { return nil, errors.New("offline") }

func TestStats(t *testing.T) {
	svc := NewService(NewSampleRepository(), june2024)
	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Stats{Total: 23, WithBVN: 15, JoinedThisMonth: 6}, stats)
}

func TestSearchMatchesNameEmailPhone(t *testing.T) {
	svc := NewService(NewSampleRepository(), june2024)

	byName, _, err := svc.Search(context.Background(), Filter{Query: "  OKAFOR "})
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, int64(1), byName[0].ID)

	byEmail, _, err := svc.Search(context.Background(), Filter{Query: "@outlook.com"})
	require.NoError(t, err)
	ids := make([]int64, 0, len(byEmail))
	for _, u := range byEmail {
		ids = append(ids, u.ID)
	}
	if diff := cmp.Diff([]int64{3, 10, 15, 20}, ids); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}

	byPhone, _, err := svc.Search(context.Background(), Filter{Query: "0909876"})
	require.NoError(t, err)
	require.Len(t, byPhone, 1)
	assert.Equal(t, "Ifeanyi Obi", byPhone[0].Name)
}

func TestSearchPaginates(t *testing.T) {
	svc := NewService(NewSampleRepository(), june2024)

	page, p, err := svc.Search(context.Background(), Filter{Page: 3})
	require.NoError(t, err)
	assert.Len(t, page, 3)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, "Victoria Essien", page[0].Name)

	latest, p, err := svc.Latest(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.Len(t, latest, 5)
	assert.Equal(t, 5, p.TotalPages)
	assert.Equal(t, "Adaeze Okafor", latest[0].Name, "newest first")
}

func TestRepositoryErrorsPropagate(t *testing.T) {
	svc := NewService(failingRepo{}, nil)
	_, err := svc.Stats(context.Background())
	assert.Error(t, err)
	_, _, err = svc.Search(context.Background(), Filter{})
	assert.Error(t, err)
}
