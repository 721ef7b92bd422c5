package teams

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/cornellappdev/score/internal/models"
)

type fakeTeamsRepo struct {
	mu    sync.Mutex
	teams map[uuid.UUID]models.Team
}

func newFakeTeamsRepo() *fakeTeamsRepo {
	return &fakeTeamsRepo{teams: make(map[uuid.UUID]models.Team)}
}

func (r *fakeTeamsRepo) CreateTeam(ctx context.Context, req CreateTeamRequest) (*models.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.teams {
		if t.Name == req.Name {
			t := t
			return &t, nil
		}
	}
	team := models.Team{
		ID:      uuid.New(),
		Name:    req.Name,
		Color:   req.Color,
		LogoURL: req.LogoURL,
		LogoB64: req.LogoB64,
	}
	r.teams[team.ID] = team
	return &team, nil
}

func (r *fakeTeamsRepo) GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.teams[id]; ok {
		return &t, nil
	}
	return nil, nil
}

func (r *fakeTeamsRepo) GetTeamByName(ctx context.Context, name string) (*models.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.teams {
		if t.Name == name {
			t := t
			return &t, nil
		}
	}
	return nil, nil
}

func (r *fakeTeamsRepo) ListTeamsByNameContains(ctx context.Context, substring string) ([]models.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Team
	for _, t := range r.teams {
		if strings.Contains(strings.ToLower(t.Name), strings.ToLower(substring)) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTeamsRepo) UpdateBranding(ctx context.Context, id uuid.UUID, req UpdateBrandingRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.teams[id]
	if !ok {
		return nil
	}
	t.Color = req.Color
	t.LogoURL = req.LogoURL
	t.LogoB64 = req.LogoB64
	r.teams[id] = t
	return nil
}

func redLogoPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 16, B: 16, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestGetOrCreateCreatesTeamWithBranding(t *testing.T) {
	logo := redLogoPNG(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(logo)
	}))
	defer server.Close()

	repo := newFakeTeamsRepo()
	dir := NewDirectory(repo)

	team, err := dir.GetOrCreate(context.Background(), "Harvard", server.URL+"/logo.png")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}

	if team.Name != "Harvard" {
		t.Errorf("name = %q", team.Name)
	}
	if team.Color != "#c00000" {
		t.Errorf("color = %q, want derived #c00000", team.Color)
	}
	if team.LogoB64 == "" {
		t.Error("logo cache empty")
	}
}

func TestGetOrCreateReturnsExistingIdentity(t *testing.T) {
	logo := redLogoPNG(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(logo)
	}))
	defer server.Close()

	repo := newFakeTeamsRepo()
	dir := NewDirectory(repo)

	first, err := dir.GetOrCreate(context.Background(), "Harvard", server.URL+"/logo.png")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	second, err := dir.GetOrCreate(context.Background(), "Harvard", server.URL+"/logo2.png")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("identity changed: %s vs %s", second.ID, first.ID)
	}

	// Later sighting refreshes branding
	stored, _ := repo.GetTeam(context.Background(), first.ID)
	if stored.LogoURL != server.URL+"/logo2.png" {
		t.Errorf("logo url = %q, not refreshed", stored.LogoURL)
	}
}

func TestGetOrCreateToleratesLogoFetchFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	repo := newFakeTeamsRepo()
	dir := NewDirectory(repo)

	team, err := dir.GetOrCreate(context.Background(), "Harvard", server.URL+"/logo.png")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}

	if team.Color != defaultColor {
		t.Errorf("color = %q, want %q on fetch failure", team.Color, defaultColor)
	}
	if team.LogoB64 != "" {
		t.Error("logo cache should be empty on fetch failure")
	}
}

func TestGetOrCreateWithoutLogo(t *testing.T) {
	repo := newFakeTeamsRepo()
	dir := NewDirectory(repo)

	team, err := dir.GetOrCreate(context.Background(), "TBD", "")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if team.Color != fallbackColor {
		t.Errorf("color = %q, want %q without a logo", team.Color, fallbackColor)
	}
}

func TestGetOrCreateRequiresName(t *testing.T) {
	dir := NewDirectory(newFakeTeamsRepo())
	if _, err := dir.GetOrCreate(context.Background(), "", ""); err == nil {
		t.Error("GetOrCreate should reject an empty name")
	}
}

func TestFindByNameContains(t *testing.T) {
	repo := newFakeTeamsRepo()
	dir := NewDirectory(repo)

	if _, err := dir.GetOrCreate(context.Background(), "Harvard", ""); err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if _, err := dir.GetOrCreate(context.Background(), "Yale", ""); err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}

	found, err := dir.FindByNameContains(context.Background(), "harv")
	if err != nil {
		t.Fatalf("FindByNameContains: %v", err)
	}
	if len(found) != 1 || found[0].Name != "Harvard" {
		t.Errorf("found = %+v", found)
	}
}
