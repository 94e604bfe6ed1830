package api

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumeBuilder/internal/database"
	"resumeBuilder/internal/resume"
	"resumeBuilder/internal/tasks"
)

func TestExportHTML_UsesStoredCustomization(t *testing.T) {
	env := newTestEnv(t)
	userID := env.createUser(t, "ada@example.com", "correct-horse", false)
	token := env.accessToken(t, userID)

	_, err := env.customizations.Put(t.Context(), userID, resume.Customization{Template: "classic"})
	require.NoError(t, err)
	rec, err := env.resumes.Create(t.Context(), userID, sampleResumeData(), "Ada's CV")
	require.NoError(t, err)

	resp := env.do(t, http.MethodGet, "/v1/resumes/"+rec.ID+"/export/html?download=1", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "text/html; charset=utf-8", resp.Header().Get("Content-Type"))
	assert.Contains(t, resp.Header().Get("Content-Disposition"), `filename="Ada's CV.html"`)

	body := resp.Body.String()
	assert.Contains(t, body, "template-classic")
	assert.Contains(t, body, "Ada Lovelace")
	assert.Contains(t, body, "&lt;first&gt;")
	assert.NotContains(t, body, "<first>")
}

func TestExportHTML_ResumeCustomizationWins(t *testing.T) {
	env := newTestEnv(t)
	userID := env.createUser(t, "ada@example.com", "correct-horse", false)
	token := env.accessToken(t, userID)

	_, err := env.customizations.Put(t.Context(), userID, resume.Customization{Template: "classic"})
	require.NoError(t, err)
	data := sampleResumeData()
	data.Customization = &resume.Customization{Template: "tech"}
	rec, err := env.resumes.Create(t.Context(), userID, data, "")
	require.NoError(t, err)

	resp := env.do(t, http.MethodGet, "/v1/resumes/"+rec.ID+"/export/html", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "template-tech")
	assert.Empty(t, resp.Header().Get("Content-Disposition"))
}

func TestExportText(t *testing.T) {
	env := newTestEnv(t)
	userID := env.createUser(t, "ada@example.com", "correct-horse", false)
	token := env.accessToken(t, userID)
	rec, err := env.resumes.Create(t.Context(), userID, sampleResumeData(), "Main")
	require.NoError(t, err)

	resp := env.do(t, http.MethodGet, "/v1/resumes/"+rec.ID+"/export/text", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.True(t, strings.HasPrefix(resp.Body.String(), "RESUME: Main\n"))
	assert.Contains(t, resp.Body.String(), "Engineer at Analytical Engines")

	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/v1/resumes/missing/export/text", token, nil).Code)
}

func TestPDFExportLifecycle(t *testing.T) {
	env := newTestEnv(t)
	userID := env.createUser(t, "ada@example.com", "correct-horse", false)
	token := env.accessToken(t, userID)
	rec, err := env.resumes.Create(t.Context(), userID, sampleResumeData(), "Main")
	require.NoError(t, err)

	link := env.do(t, http.MethodGet, "/v1/resumes/"+rec.ID+"/export/pdf", token, nil)
	assert.Equal(t, http.StatusConflict, link.Code)

	resp := env.do(t, http.MethodPost, "/v1/resumes/"+rec.ID+"/export/pdf", token, nil)
	require.Equal(t, http.StatusAccepted, resp.Code, resp.Body.String())
	assert.Equal(t, "task-1", decodeBody[map[string]any](t, resp)["task_id"])

	require.Len(t, env.queue.tasks, 1)
	assert.Equal(t, tasks.TypeExportPDF, env.queue.tasks[0].Type())
	payload, err := tasks.ParseExportPDFPayload(env.queue.tasks[0])
	require.NoError(t, err)
	assert.Equal(t, rec.ID, payload.ResumeID)
	assert.Equal(t, userID, payload.UserID)
	assert.NotEmpty(t, payload.CorrelationID)

	stored, err := env.resumes.Get(t.Context(), userID, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, database.ExportStatusPending, stored.ExportStatus)

	link = env.do(t, http.MethodGet, "/v1/resumes/"+rec.ID+"/export/pdf", token, nil)
	assert.Equal(t, http.StatusConflict, link.Code)
	assert.Contains(t, link.Body.String(), database.ExportStatusPending)

	key := "exports/1/" + rec.ID + "/file.pdf"
	require.NoError(t, env.resumes.SetExportStatus(t.Context(), rec.ID, database.ExportStatusCompleted, key))

	link = env.do(t, http.MethodGet, "/v1/resumes/"+rec.ID+"/export/pdf", token, nil)
	require.Equal(t, http.StatusOK, link.Code)
	body := decodeBody[map[string]any](t, link)
	assert.Equal(t, "https://minio.test/"+key+"?filename=Main.pdf", body["url"])
	assert.EqualValues(t, 900, body["expires_in"])
}

func TestRequestPDF_EnqueueFailureMarksFailed(t *testing.T) {
	env := newTestEnv(t)
	env.queue.err = errBoom
	userID := env.createUser(t, "ada@example.com", "correct-horse", false)
	token := env.accessToken(t, userID)
	rec, err := env.resumes.Create(t.Context(), userID, sampleResumeData(), "")
	require.NoError(t, err)

	resp := env.do(t, http.MethodPost, "/v1/resumes/"+rec.ID+"/export/pdf", token, nil)
	assert.Equal(t, http.StatusInternalServerError, resp.Code)

	stored, err := env.resumes.Get(t.Context(), userID, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, database.ExportStatusFailed, stored.ExportStatus)
}

func TestExportFilename(t *testing.T) {
	assert.Equal(t, "resume.pdf", exportFilename("  ", ".pdf"))
	assert.Equal(t, "a_b.pdf", exportFilename(`a"/b`, ".pdf"))
	assert.Equal(t, "Ada's Resume.txt", exportFilename("Ada's Resume", ".txt"))
}
