package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

const assessmentJSON = `{
	"overall_score": 8,
	"strengths": ["Clear impact", "Strong stack", "Leadership"],
	"areas_for_improvement": ["Metrics", "Summary", "Certifications"],
	"skills_analysis": {"technical_skills": ["Go"], "soft_skills": ["Mentoring"], "missing_skills": ["Kubernetes"]},
	"experience_assessment": {"level": "Senior-level", "relevance": "Good", "achievements": "Solid"},
	"recommendations": ["a", "b", "c", "d"],
	"ats_score": 84
}`

func newPayPerQServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func scoreErrKind(t *testing.T, err error) ScoreErrorKind {
	t.Helper()
	var scoreErr *ScoreError
	require.True(t, errors.As(err, &scoreErr), "expected *ScoreError, got %v", err)
	return scoreErr.Kind
}

func TestPayPerQScorer_Success(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{name: "bare assessment", body: assessmentJSON},
		{name: "analysis envelope", body: `{"analysis": ` + assessmentJSON + `}`},
		{name: "text output", body: func() string {
			out, _ := json.Marshal(map[string]string{"output": "```json\n" + assessmentJSON + "\n```"})
			return string(out)
		}()},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var got payPerQRequest
			srv := newPayPerQServer(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tc.body))
			})

			scorer := NewPayPerQScorer("secret", srv.URL, "gpt-5", time.Second)
			result, err := scorer.Score(context.Background(), "my resume")
			require.NoError(t, err)

			assert.Equal(t, 8, result.OverallScore)
			assert.Equal(t, 84, result.ATSScore)
			assert.Equal(t, []string{"Go"}, result.SkillsAnalysis.TechnicalSkills)
			assert.Equal(t, "my resume", got.Input)
			assert.Equal(t, "gpt-5", got.Model)
			assert.Equal(t, payPerQMaxTokens, got.MaxTokens)
			assert.NotEmpty(t, got.Prompt)
		})
	}
}

func TestPayPerQScorer_Failures(t *testing.T) {
	testCases := []struct {
		name     string
		handler  http.HandlerFunc
		timeout  time.Duration
		wantKind ScoreErrorKind
	}{
		{
			name: "non-200 status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "upstream down", http.StatusBadGateway)
			},
			timeout:  time.Second,
			wantKind: ScoreErrStatus,
		},
		{
			name: "unauthorized",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			},
			timeout:  time.Second,
			wantKind: ScoreErrStatus,
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("<html>oops</html>"))
			},
			timeout:  time.Second,
			wantKind: ScoreErrDecode,
		},
		{
			name: "score out of range",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"overall_score": 42, "ats_score": 50}`))
			},
			timeout:  time.Second,
			wantKind: ScoreErrDecode,
		},
		{
			name: "slow upstream",
			handler: func(w http.ResponseWriter, r *http.Request) {
				time.Sleep(300 * time.Millisecond)
				_, _ = w.Write([]byte(assessmentJSON))
			},
			timeout:  50 * time.Millisecond,
			wantKind: ScoreErrTimeout,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv := newPayPerQServer(t, tc.handler)
			scorer := NewPayPerQScorer("secret", srv.URL, "gpt-5", tc.timeout)

			result, err := scorer.Score(context.Background(), "resume")
			assert.Nil(t, result)
			assert.Equal(t, tc.wantKind, scoreErrKind(t, err))
		})
	}
}

func TestPayPerQScorer_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	scorer := NewPayPerQScorer("secret", url, "gpt-5", time.Second)
	_, err := scorer.Score(context.Background(), "resume")
	assert.Contains(t, []ScoreErrorKind{ScoreErrTransport, ScoreErrTimeout}, scoreErrKind(t, err))
}

func TestPayPerQScorer_MissingKey(t *testing.T) {
	scorer := NewPayPerQScorer("", "http://127.0.0.1:1", "gpt-5", time.Second)
	_, err := scorer.Score(context.Background(), "resume")
	assert.Equal(t, ScoreErrConfig, scoreErrKind(t, err))
}

func TestPayPerQScorer_ExpiredContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	time.Sleep(time.Millisecond)

	scorer := NewPayPerQScorer("secret", "http://127.0.0.1:1", "gpt-5", time.Second)
	_, err := scorer.Score(ctx, "resume")
	assert.Equal(t, ScoreErrTimeout, scoreErrKind(t, err))
}

func TestIsTimeout(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want bool
	}{
		{name: "fasthttp timeout", err: fasthttp.ErrTimeout, want: true},
		{name: "joined dial timeout", err: errors.Join(fasthttp.ErrDialTimeout), want: true},
		{name: "wrapped deadline", err: fmt.Errorf("request: %w", context.DeadlineExceeded), want: true},
		{name: "connection refused", err: errors.New("dial tcp 127.0.0.1:1: connect: connection refused"), want: false},
		{name: "word in message only", err: errors.New("upstream said: timeout"), want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, isTimeout(tc.err))
		})
	}
}
