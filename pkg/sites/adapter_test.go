package sites

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobradar/pkg/models"
)

func questionConfig() *Config {
	return &Config{
		ID:         "qsite",
		BaseURL:    "https://qsite.test",
		Kind:       models.KindQuestions,
		SearchPath: "/?s=%s",
		Selectors: map[string][]string{
			FieldQuestion: {".question-title", "h3.fallback"},
		},
	}
}

func jobConfig() *Config {
	return &Config{
		ID:         "jsite",
		BaseURL:    "https://jsite.test",
		Kind:       models.KindJobs,
		SearchPath: "/jobs?q=%s",
		Selectors: map[string][]string{
			FieldCard:     {".job-card"},
			FieldTitle:    {".title-new", ".title"},
			FieldCompany:  {".company"},
			FieldLocation: {".location"},
			FieldSalary:   {".salary"},
		},
	}
}

func TestSelectorAdapter_ExtractQuestions(t *testing.T) {
	a := newSelectorAdapter(questionConfig())

	t.Run("primary selector", func(t *testing.T) {
		html := `<html><body>
			<div class="question-title">Explain how Redis eviction works</div>
			<div class="question-title">What is a goroutine?</div>
		</body></html>`

		candidates, err := a.ExtractCandidates(html, "https://qsite.test/?s=redis")
		require.NoError(t, err)
		require.Len(t, candidates, 2)
		assert.Equal(t, "Explain how Redis eviction works", candidates[0].RawText)
		assert.Equal(t, "qsite", candidates[0].SourceSite)
		assert.Equal(t, "https://qsite.test/?s=redis", candidates[0].SourceURL)
	})

	t.Run("falls back on markup drift", func(t *testing.T) {
		// Primary selector gone, alternate still present.
		html := `<html><body><h3 class="fallback">What is polymorphism?</h3></body></html>`

		candidates, err := a.ExtractCandidates(html, "u")
		require.NoError(t, err)
		require.Len(t, candidates, 1)
		assert.Equal(t, "What is polymorphism?", candidates[0].RawText)
	})

	t.Run("no selector matches yields nothing", func(t *testing.T) {
		candidates, err := a.ExtractCandidates("<html><body><p>unrelated</p></body></html>", "u")
		require.NoError(t, err)
		assert.Empty(t, candidates)
	})

	t.Run("script content is stripped before extraction", func(t *testing.T) {
		html := `<html><body>
			<script>var x = "question-title";</script>
			<div class="question-title">Real question</div>
		</body></html>`

		candidates, err := a.ExtractCandidates(html, "u")
		require.NoError(t, err)
		require.Len(t, candidates, 1)
		assert.Equal(t, "Real question", candidates[0].RawText)
	})
}

func TestSelectorAdapter_ExtractJobCards(t *testing.T) {
	a := newSelectorAdapter(jobConfig())

	html := `<html><body>
		<div class="job-card">
			<span class="title">Golang Developer</span>
			<span class="company">Acme</span>
			<span class="location">Remote</span>
			<span class="salary">$150k</span>
		</div>
		<div class="job-card">
			<span class="title-new">Backend Engineer</span>
			<span class="company">Globex</span>
		</div>
	</body></html>`

	candidates, err := a.ExtractCandidates(html, "https://jsite.test/jobs?q=golang")
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	first := candidates[0]
	assert.Equal(t, "Golang Developer", first.Fields[FieldTitle])
	assert.Equal(t, "Acme", first.Fields[FieldCompany])
	assert.Equal(t, "Remote", first.Fields[FieldLocation])
	assert.Equal(t, "$150k", first.Fields[FieldSalary])

	// Second card uses the newer title markup; fallback ordering favors it.
	second := candidates[1]
	assert.Equal(t, "Backend Engineer", second.Fields[FieldTitle])
	assert.Equal(t, "Globex", second.Fields[FieldCompany])
	assert.NotContains(t, second.Fields, FieldLocation)
}

func TestSelectorAdapter_ThrottleDetection(t *testing.T) {
	a := newSelectorAdapter(questionConfig())

	html := `<html><body><p>Our systems have detected unusual traffic. Please complete the CAPTCHA.</p></body></html>`

	candidates, err := a.ExtractCandidates(html, "u")
	assert.Nil(t, candidates)
	require.Error(t, err)

	ce, ok := err.(*models.CrawlError)
	require.True(t, ok)
	assert.Equal(t, models.ErrRateLimit, ce.Kind)
	assert.Equal(t, time.Minute, ce.RetryAfter)
}

func TestSelectorAdapter_SearchURL(t *testing.T) {
	t.Run("question site with keyword", func(t *testing.T) {
		a := newSelectorAdapter(questionConfig())
		assert.Equal(t, "https://qsite.test/?s=redis", a.SearchURL("backend", "redis"))
	})

	t.Run("question site without keyword appends intent", func(t *testing.T) {
		a := newSelectorAdapter(questionConfig())
		assert.Equal(t, "https://qsite.test/?s=backend+interview+questions", a.SearchURL("backend", ""))
	})

	t.Run("path embedding the intent skips the suffix", func(t *testing.T) {
		cfg := questionConfig()
		cfg.SearchPath = "/%s-interview-questions"
		a := newSelectorAdapter(cfg)
		assert.Equal(t, "https://qsite.test/backend-interview-questions", a.SearchURL("backend", ""))
	})

	t.Run("job site without keyword uses category", func(t *testing.T) {
		a := newSelectorAdapter(jobConfig())
		assert.Equal(t, "https://jsite.test/jobs?q=backend", a.SearchURL("backend", ""))
	})
}
