package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cortsfranco/CicedoHR/api"
	"github.com/cortsfranco/CicedoHR/assistant"
	"github.com/cortsfranco/CicedoHR/roster"
)

// =============================================================================
// TEST SETUP
// =============================================================================

type stubDelegate struct {
	answer string
	err    error
}

func (d *stubDelegate) Ask(context.Context, string, roster.Snapshot) (string, error) {
	return d.answer, d.err
}

func newTestServer(t *testing.T, delegate api.QueryDelegate) (*httptest.Server, *roster.Store) {
	store := roster.NewStore(roster.SeedCollaborators(), roster.SeedRecords(), nil)
	server := httptest.NewServer(api.NewRouter(api.NewHandler(store, delegate)))
	t.Cleanup(server.Close)
	return server, store
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// =============================================================================
// COLLABORATOR ENDPOINTS
// =============================================================================

func TestAPI_ListCollaborators(t *testing.T) {
	server, _ := newTestServer(t, nil)

	resp, err := http.Get(server.URL + "/api/collaborators")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var collaborators []roster.Collaborator
	decodeBody(t, resp, &collaborators)
	assert.Len(t, collaborators, 5)
}

func TestAPI_CreateCollaborator(t *testing.T) {
	server, store := newTestServer(t, nil)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/collaborators", map[string]any{
		"name": "Ana Prueba", "dni": "55667788F", "legajo": "2001", "cuil": "27-55667788-0",
		"position": "Analista", "ug": "UG1-LEXXOR", "hireDate": "2024-03-01",
		"contractType": "Indeterminado",
		"hire":         map[string]any{"salary": 1000, "cost": 100},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		Collaborator roster.Collaborator `json:"collaborator"`
		HireRecord   roster.HRRecord     `json:"hireRecord"`
	}
	decodeBody(t, resp, &created)
	assert.Equal(t, roster.StatusActive, created.Collaborator.Status)
	assert.Equal(t, roster.RecordHire, created.HireRecord.Type)
	assert.Equal(t, created.Collaborator.ID, created.HireRecord.CollaboratorID)

	assert.Len(t, store.Collaborators(), 6)
	assert.Len(t, store.Records(), 11)
}

func TestAPI_CreateCollaborator_BadDate(t *testing.T) {
	server, _ := newTestServer(t, nil)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/collaborators", map[string]any{
		"name": "X", "dni": "1", "legajo": "1", "cuil": "1", "position": "P",
		"ug": "UG1-LEXXOR", "hireDate": "01/03/2024", "contractType": "Indeterminado",
		"hire": map[string]any{"salary": 1},
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_DeleteCollaborators_Cascades(t *testing.T) {
	server, store := newTestServer(t, nil)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/collaborators/delete", map[string]any{
		"ids": []string{"c4"},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		CollaboratorsRemoved int `json:"collaboratorsRemoved"`
		RecordsRemoved       int `json:"recordsRemoved"`
	}
	decodeBody(t, resp, &result)
	assert.Equal(t, 1, result.CollaboratorsRemoved)
	assert.Equal(t, 2, result.RecordsRemoved)
	assert.Len(t, store.Collaborators(), 4)
}

func TestAPI_ImportCollaborators_PartialSuccess(t *testing.T) {
	// GIVEN: A CSV with one clean row and one duplicating a seed DNI
	// WHEN: Importing
	// THEN: 200 with one imported row and one row-level error message

	server, store := newTestServer(t, nil)

	csvBody := strings.Join([]string{
		"name,dni,legajo,cuil,position,ug,hireDate,contractType,status",
		"Nueva Persona,70707070Z,7001,27-70707070-0,Analista,UG1-LEXXOR,2024-02-01,Eventual,Activo",
		"Duplicada,12345678A,7002,27-00000000-0,Analista,UG1-LEXXOR,2024-02-01,Eventual,Activo",
	}, "\n")

	resp, err := http.Post(server.URL+"/api/collaborators/import", "text/csv", strings.NewReader(csvBody))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Imported int      `json:"imported"`
		Errors   []string `json:"errors"`
	}
	decodeBody(t, resp, &result)
	assert.Equal(t, 1, result.Imported)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "row 3")
	assert.Len(t, store.Collaborators(), 6)
}

func TestAPI_ImportCollaborators_MalformedCSV(t *testing.T) {
	server, _ := newTestServer(t, nil)

	resp, err := http.Post(server.URL+"/api/collaborators/import", "text/csv",
		strings.NewReader("name,dni\n\"broken,1\n"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_ExportCollaborators(t *testing.T) {
	server, _ := newTestServer(t, nil)

	resp, err := http.Get(server.URL + "/api/collaborators/export")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "colaboradores.csv")
}

// =============================================================================
// RECORD ENDPOINTS
// =============================================================================

func TestAPI_CreateRecord_TerminationFlipsStatus(t *testing.T) {
	server, store := newTestServer(t, nil)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/records", map[string]any{
		"date": "2024-02-01", "collaboratorId": "c1", "type": "EGRESO",
		"details": map[string]any{"reason": "Renuncia"}, "cost": "500",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var rec roster.HRRecord
	decodeBody(t, resp, &rec)
	assert.Equal(t, roster.RecordTermination, rec.Type)
	assert.Equal(t, "UG2-VISTA MENDOZA", rec.UG, "UG snapshotted from the collaborator")

	for _, c := range store.Collaborators() {
		if c.ID == "c1" {
			assert.Equal(t, roster.StatusInactive, c.Status)
		}
	}
}

func TestAPI_CreateRecord_UnknownCollaborator(t *testing.T) {
	server, _ := newTestServer(t, nil)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/records", map[string]any{
		"date": "2024-02-01", "collaboratorId": "c-missing", "type": "AUSENCIA",
		"details": map[string]any{"reason": "ART", "days": 1}, "cost": "0",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_CreateRecord_BadDetails(t *testing.T) {
	server, _ := newTestServer(t, nil)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/records", map[string]any{
		"date": "2024-02-01", "collaboratorId": "c1", "type": "SANCION",
		"details": map[string]any{"reason": "sin tipo"}, "cost": "0",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_UpdateRecord_TypeChangeConflict(t *testing.T) {
	server, _ := newTestServer(t, nil)

	resp := doJSON(t, http.MethodPut, server.URL+"/api/records/r8", map[string]any{
		"date": "2023-05-22", "collaboratorId": "c1", "ug": "UG2-VISTA MENDOZA",
		"position": "Desarrolladora Frontend", "type": "SANCION",
		"details": map[string]any{"type": "Apercibimiento verbal", "reason": "x"}, "cost": 0,
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestAPI_ListRecords_Filters(t *testing.T) {
	server, _ := newTestServer(t, nil)

	resp, err := http.Get(server.URL + "/api/records?type=SANCION")
	require.NoError(t, err)
	var sanctions []roster.HRRecord
	decodeBody(t, resp, &sanctions)
	assert.Len(t, sanctions, 2)

	resp, err = http.Get(server.URL + "/api/records?collaboratorId=c4")
	require.NoError(t, err)
	var c4records []roster.HRRecord
	decodeBody(t, resp, &c4records)
	assert.Len(t, c4records, 2)
}

func TestAPI_ImportRecords_FlipsTerminatedCollaborators(t *testing.T) {
	server, store := newTestServer(t, nil)

	csvBody := strings.Join([]string{
		"date,collaboratorId,ug,position,type,details,cost,observations",
		`2024-03-01,c1,UG2-VISTA MENDOZA,Desarrolladora Frontend,EGRESO,"{""reason"": ""Renuncia""}",500,`,
	}, "\n")

	resp, err := http.Post(server.URL+"/api/records/import", "text/csv", strings.NewReader(csvBody))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Imported int      `json:"imported"`
		Errors   []string `json:"errors"`
	}
	decodeBody(t, resp, &result)
	assert.Equal(t, 1, result.Imported)
	assert.Empty(t, result.Errors)

	for _, c := range store.Collaborators() {
		if c.ID == "c1" {
			assert.Equal(t, roster.StatusInactive, c.Status)
		}
	}
}

// =============================================================================
// ANALYTICS ENDPOINTS
// =============================================================================

func TestAPI_Dashboard(t *testing.T) {
	server, _ := newTestServer(t, nil)

	resp, err := http.Get(server.URL + "/api/dashboard")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var dashboard struct {
		KPIs struct {
			ActiveCollaborators int `json:"activeCollaborators"`
			Hires               int `json:"hires"`
			Terminations        int `json:"terminations"`
		} `json:"kpis"`
		MonthlyActivity []struct {
			Label string `json:"label"`
		} `json:"monthlyActivity"`
		SanctionDistribution []struct {
			Type  string `json:"type"`
			Count int    `json:"count"`
		} `json:"sanctionDistribution"`
	}
	decodeBody(t, resp, &dashboard)

	assert.Equal(t, 4, dashboard.KPIs.ActiveCollaborators)
	assert.Equal(t, 5, dashboard.KPIs.Hires)
	assert.Equal(t, 1, dashboard.KPIs.Terminations)
	assert.NotEmpty(t, dashboard.MonthlyActivity)
	assert.Len(t, dashboard.SanctionDistribution, 2)
}

func TestAPI_Analysis_DefaultWindowSpansRecords(t *testing.T) {
	server, _ := newTestServer(t, nil)

	resp, err := http.Get(server.URL + "/api/analysis")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var analysis struct {
		Start        string  `json:"start"`
		End          string  `json:"end"`
		TurnoverRate float64 `json:"turnoverRate"`
	}
	decodeBody(t, resp, &analysis)

	// The seed records span 2020-05-01 .. 2023-07-10.
	assert.Equal(t, "2020-05-01", analysis.Start)
	assert.Equal(t, "2023-07-10", analysis.End)
	assert.Greater(t, analysis.TurnoverRate, 0.0)
}

func TestAPI_Analysis_ExplicitFilter(t *testing.T) {
	server, _ := newTestServer(t, nil)

	resp, err := http.Get(server.URL + "/api/analysis?start=2023-01-01&end=2023-12-31&ug=UG1-LEXXOR")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var analysis struct {
		TurnoverRate         float64 `json:"turnoverRate"`
		TerminationsByReason []any   `json:"terminationsByReason"`
	}
	decodeBody(t, resp, &analysis)
	assert.Zero(t, analysis.TurnoverRate, "no terminations inside UG1-LEXXOR")
	assert.Empty(t, analysis.TerminationsByReason)
}

func TestAPI_Analysis_BadDailySalary(t *testing.T) {
	server, _ := newTestServer(t, nil)

	resp, err := http.Get(server.URL + "/api/analysis?daily_salary=mucho")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// =============================================================================
// ASSISTANT ENDPOINT
// =============================================================================

func TestAPI_Assistant_Answer(t *testing.T) {
	server, _ := newTestServer(t, &stubDelegate{answer: "Hay 4 colaboradores activos."})

	resp := doJSON(t, http.MethodPost, server.URL+"/api/assistant", map[string]any{
		"question": "¿Cuántos colaboradores activos hay?",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var answer struct {
		Answer string `json:"answer"`
	}
	decodeBody(t, resp, &answer)
	assert.Equal(t, "Hay 4 colaboradores activos.", answer.Answer)
}

func TestAPI_Assistant_DelegateFailureReturnsApology(t *testing.T) {
	// A delegate failure is never an HTTP error: the user gets the fixed
	// apology answer with a 200.
	server, _ := newTestServer(t, &stubDelegate{err: errors.New("model unreachable")})

	resp := doJSON(t, http.MethodPost, server.URL+"/api/assistant", map[string]any{
		"question": "¿qué pasó?",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var answer struct {
		Answer string `json:"answer"`
	}
	decodeBody(t, resp, &answer)
	assert.Equal(t, assistant.Apology, answer.Answer)
}

func TestAPI_Assistant_EmptyQuestion(t *testing.T) {
	server, _ := newTestServer(t, &stubDelegate{answer: "x"})

	resp := doJSON(t, http.MethodPost, server.URL+"/api/assistant", map[string]any{"question": ""})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
