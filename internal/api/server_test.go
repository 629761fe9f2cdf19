package api

import (
	"bytes"
	"context"
	"encoding/json/jsontext"
	"encoding/json/v2"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readquest/readquest-server/internal/catalog"
	"github.com/readquest/readquest-server/internal/curator"
	"github.com/readquest/readquest-server/internal/domain"
	"github.com/readquest/readquest-server/internal/recommend"
	"github.com/readquest/readquest-server/internal/search"
	"github.com/readquest/readquest-server/internal/service"
	"github.com/readquest/readquest-server/internal/store"
	"github.com/readquest/readquest-server/internal/validation"

	configpkg "github.com/readquest/readquest-server/internal/config"
)

// testServer wraps the API server with a humatest client.
type testServer struct {
	*Server
	api humatest.TestAPI
}

// scriptedOracle fills the mandated split from the front of the pool.
type scriptedOracle struct{}

func (scriptedOracle) Curate(_ context.Context, req curator.CurationRequest) (*domain.RecommendationResult, error) {
	books := make([]domain.CuratedBook, 0, req.Total)
	for i, b := range req.Candidates {
		if i >= req.Total {
			break
		}
		category := domain.CategoryMustRead
		if i >= req.MustRead {
			category = domain.CategoryRecommended
		}
		books = append(books, domain.CuratedBook{
			Book:       b,
			Category:   category,
			Difficulty: domain.DifficultyForLevel(b.Level),
		})
	}
	return &domain.RecommendationResult{Books: books}, nil
}

// scriptedSource returns a fixed URL or an error.
type scriptedSource struct {
	url string
	err error
}

func (s scriptedSource) FindCover(context.Context, string, string) (string, error) {
	return s.url, s.err
}

// approvingVerifier accepts every upload.
type approvingVerifier struct{}

func (approvingVerifier) VerifyCover(context.Context, []byte, string, string, string) (bool, string) {
	return true, "Cover matches."
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	var rows strings.Builder
	rows.WriteString("7\t\tM0007\tCharlotte's Web\t\tE.B. White\t680L\t3.4\tFiction\t\tAnimals\t\tA pig and a spider.\n")
	for i := 10; i < 60; i++ {
		fmt.Fprintf(&rows, "%d\t\tC%03d\tBook %d\t\tAuthor %d\t500L\t3.0\tFiction\t\tAnimals\t\tA story.\n", i, i, i, i)
	}
	cat, err := catalog.Parse(strings.NewReader(rows.String()), nil)
	require.NoError(t, err)

	dataDir := t.TempDir()
	st, err := store.New(filepath.Join(dataDir, "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	index, err := search.NewSearchIndex(search.Options{DataPath: dataDir})
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })
	require.NoError(t, index.IndexCatalog(cat))

	cfg := &configpkg.Config{
		Server: configpkg.ServerConfig{CORSOrigins: []string{"*"}},
		Covers: configpkg.CoversConfig{ProxyBaseURL: "https://wsrv.nl/", ProxyWidth: 300, ProxyFormat: "webp"},
	}

	selector := recommend.NewSelector(cat, nil, recommend.WithJitter(func() float64 { return 0 }))
	recSvc := service.NewRecommendationService(selector, st.Recommendations, scriptedOracle{}, validation.New(), nil)
	coverSvc := service.NewCoverService(
		scriptedSource{url: "https://covers.example.org/7-L.jpg"},
		scriptedSource{err: service.ErrNoCover},
		cfg.Covers, nil,
	)
	overrideSvc := service.NewOverrideService(cat, st.CoverOverrides, approvingVerifier{}, nil)

	router := chi.NewRouter()
	humaConfig := huma.DefaultConfig("ReadQuest API Test", "1.0.0")
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)
	api := humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s := &Server{
		catalog:         cat,
		searchIndex:     index,
		recommendations: recSvc,
		covers:          coverSvc,
		overrides:       overrideSvc,
		router:          router,
		api:             api,
		logger:          nil,
	}
	s.registerHealthRoutes()
	s.registerRecommendationRoutes()
	s.registerCatalogRoutes()
	s.registerCoverRoutes()
	s.registerOverrideRoutes()

	return &testServer{Server: s, api: humatest.Wrap(t, api)}
}

// decodeEnvelope unwraps the response envelope into dest.
func decodeEnvelope(t *testing.T, body []byte, dest any) Envelope {
	t.Helper()

	var env struct {
		V       int            `json:"v"`
		Success bool           `json:"success"`
		Data    jsontext.Value `json:"data"`
		Error   string         `json:"error"`
		Code    string         `json:"code"`
	}
	require.NoError(t, json.Unmarshal(body, &env))
	if dest != nil && len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, dest))
	}
	return Envelope{V: env.V, Success: env.Success, Error: env.Error, Code: env.Code}
}

func TestHealthCheck(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/health")
	require.Equal(t, http.StatusOK, resp.Code)

	var health HealthResponse
	env := decodeEnvelope(t, resp.Body.Bytes(), &health)
	assert.True(t, env.Success)
	assert.Equal(t, "healthy", health.Status)
	assert.Contains(t, health.Components, "catalog")
	assert.Contains(t, health.Components, "search")
}

func TestCreateRecommendations(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/recommendations", map[string]any{
		"grade": "3rd Grade",
		"month": "March",
		"theme": "All Themes",
		"count": 11,
	})
	require.Equal(t, http.StatusOK, resp.Code)

	var body RecommendationResponse
	env := decodeEnvelope(t, resp.Body.Bytes(), &body)
	assert.True(t, env.Success)
	require.Len(t, body.Books, 11)

	var mustRead int
	for _, b := range body.Books {
		if b.Category == string(domain.CategoryMustRead) {
			mustRead++
		}
		assert.NotEmpty(t, b.Difficulty)
	}
	assert.Equal(t, 5, mustRead)
}

func TestCreateRecommendations_InvalidCount(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/recommendations", map[string]any{
		"grade": "3rd Grade",
		"month": "March",
		"theme": "All Themes",
		"count": 0,
	})
	require.Equal(t, http.StatusBadRequest, resp.Code)

	env := decodeEnvelope(t, resp.Body.Bytes(), nil)
	assert.False(t, env.Success)
	assert.Equal(t, "VALIDATION", env.Code)
}

func TestCatalogSearch(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/catalog/search?q=charlotte")
	require.Equal(t, http.StatusOK, resp.Code)

	var body CatalogSearchResponse
	decodeEnvelope(t, resp.Body.Bytes(), &body)
	require.NotEmpty(t, body.Hits)
	assert.Equal(t, "Charlotte's Web", body.Hits[0].Title)
}

func TestResolveCover(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/covers?title=Charlotte%27s+Web&author=E.B.+White")
	require.Equal(t, http.StatusOK, resp.Code)

	var body CoverResponse
	decodeEnvelope(t, resp.Body.Bytes(), &body)
	assert.Contains(t, body.URL, "wsrv.nl")
	assert.Contains(t, body.URL, "output=webp")
}

func TestResolveCover_MissingTitle(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/covers")
	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func testCoverPNG(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 8, 12))
	for y := range 12 {
		for x := range 8 {
			img.Set(x, y, color.RGBA{R: 30, G: 60, B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestCoverOverrideLifecycle(t *testing.T) {
	ts := setupTestServer(t)
	payload := testCoverPNG(t)

	// Upload.
	resp := ts.api.Put("/api/v1/books/7/cover",
		"Content-Type: application/octet-stream",
		bytes.NewReader(payload),
	)
	require.Equal(t, http.StatusOK, resp.Code)

	var uploaded OverrideResponse
	decodeEnvelope(t, resp.Body.Bytes(), &uploaded)
	assert.Equal(t, "7", uploaded.BookID)
	assert.Equal(t, "image/png", uploaded.ContentType)
	assert.NotEmpty(t, uploaded.BlurHash)

	// Fetch the raw image back.
	resp = ts.api.Get("/api/v1/books/7/cover")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, payload, resp.Body.Bytes())
	assert.Equal(t, "image/png", resp.Header().Get("Content-Type"))

	// Delete, then the fetch misses.
	resp = ts.api.Delete("/api/v1/books/7/cover")
	require.Equal(t, http.StatusNoContent, resp.Code)

	resp = ts.api.Get("/api/v1/books/7/cover")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestCoverOverride_UnknownBook(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Put("/api/v1/books/999/cover",
		"Content-Type: application/octet-stream",
		bytes.NewReader(testCoverPNG(t)),
	)
	require.Equal(t, http.StatusNotFound, resp.Code)

	env := decodeEnvelope(t, resp.Body.Bytes(), nil)
	assert.Equal(t, "NOT_FOUND", env.Code)
}

func TestExportRecommendations(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/recommendations/export?grade=3rd+Grade&month=March&theme=All+Themes&count=11")
	require.Equal(t, http.StatusOK, resp.Code)

	assert.Contains(t, resp.Header().Get("Content-Type"), "application/xml")
	assert.Contains(t, resp.Header().Get("Content-Disposition"), "reading-list.xml")

	out := resp.Body.String()
	assert.Contains(t, out, `grade="3rd Grade"`)
	assert.Contains(t, out, "<Difficulty>")
}
