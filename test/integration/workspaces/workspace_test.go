package workspaces

import (
	"fmt"
	"net/http"
	"testing"

	"deskhive/pkg/model"
	"deskhive/test/integration/testutil"
)

func decodeWorkspace(t *testing.T, resp *testutil.Response) model.Workspace {
	t.Helper()
	var body struct {
		Data model.Workspace `json:"data"`
	}
	if err := resp.DecodeJSON(&body); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	return body.Data
}

func createWorkspace(t *testing.T, client *testutil.Client, ws model.Workspace) model.Workspace {
	t.Helper()
	resp := client.POST(t, "/api/v1/workspaces", ws)
	testutil.AssertStatusCode(t, resp, http.StatusCreated)
	return decodeWorkspace(t, resp)
}

func TestCreate_ValidWorkspace(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	ws := testutil.ValidWorkspace()

	created := createWorkspace(t, client, ws)

	if created.ID == "" {
		t.Error("expected ID to be set")
	}
	if created.Name != ws.Name {
		t.Errorf("expected name %q, got %q", ws.Name, created.Name)
	}
	if created.Capacity != ws.Capacity {
		t.Errorf("expected capacity %d, got %d", ws.Capacity, created.Capacity)
	}

	count := mongo.CountDocuments(t, testutil.WorkspacesCollection)
	if count != 1 {
		t.Errorf("expected 1 document in DB, got %d", count)
	}
}

func TestCreate_InvalidCapacity(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	resp := client.POST(t, "/api/v1/workspaces", testutil.InvalidCapacityWorkspace())

	testutil.AssertStatusCode(t, resp, http.StatusUnprocessableEntity)
	testutil.AssertContains(t, resp, "validation")

	count := mongo.CountDocuments(t, testutil.WorkspacesCollection)
	if count != 0 {
		t.Errorf("expected no documents in DB, got %d", count)
	}
}

func TestGetByID_RoundTrip(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	created := createWorkspace(t, client, testutil.ValidWorkspace())

	resp := client.GET(t, "/api/v1/workspaces/id/"+created.ID)
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	fetched := decodeWorkspace(t, resp)
	if fetched.ID != created.ID {
		t.Errorf("expected id %q, got %q", created.ID, fetched.ID)
	}
	if fetched.Type != created.Type {
		t.Errorf("expected type %q, got %q", created.Type, fetched.Type)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	resp := client.GET(t, "/api/v1/workspaces/id/65a1b2c3d4e5f6a7b8c9d0e1")
	testutil.AssertStatusCode(t, resp, http.StatusNotFound)
}

func TestGetAll_Paginated(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	for i := 0; i < 3; i++ {
		ws := testutil.NewWorkspaceBuilder().WithName(fmt.Sprintf("Room %d", i)).Build()
		createWorkspace(t, client, ws)
	}

	resp := client.GET(t, "/api/v1/workspaces?limit=2&offset=0")
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var result struct {
		Data       []model.Workspace `json:"data"`
		TotalCount int64             `json:"total_count"`
		Limit      int               `json:"limit"`
		Offset     int64             `json:"offset"`
	}
	if err := resp.DecodeJSON(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(result.Data) != 2 {
		t.Errorf("expected 2 workspaces in page, got %d", len(result.Data))
	}
	if result.TotalCount != 3 {
		t.Errorf("expected total_count 3, got %d", result.TotalCount)
	}
}

func TestUpdate_ChangesPersist(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	created := createWorkspace(t, client, testutil.ValidWorkspace())

	newCapacity := 12
	resp := client.PATCH(t, "/api/v1/workspaces/id/"+created.ID, model.WorkspaceUpdate{
		Name:     "Renamed Room",
		Capacity: &newCapacity,
	})
	testutil.AssertStatusCode(t, resp, http.StatusNoContent)

	resp = client.GET(t, "/api/v1/workspaces/id/"+created.ID)
	fetched := decodeWorkspace(t, resp)
	if fetched.Name != "Renamed Room" {
		t.Errorf("expected updated name, got %q", fetched.Name)
	}
	if fetched.Capacity != 12 {
		t.Errorf("expected capacity 12, got %d", fetched.Capacity)
	}
}

func TestDelete_RemovesWorkspace(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	created := createWorkspace(t, client, testutil.ValidWorkspace())

	resp := client.DELETE(t, "/api/v1/workspaces/id/"+created.ID)
	testutil.AssertStatusCode(t, resp, http.StatusNoContent)

	resp = client.GET(t, "/api/v1/workspaces/id/"+created.ID)
	testutil.AssertStatusCode(t, resp, http.StatusNotFound)
}

func TestAvailabilityAndStatus(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	created := createWorkspace(t, client, testutil.ValidWorkspace())

	resp := client.GET(t, "/api/v1/workspaces/id/"+created.ID+"/status")
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	testutil.AssertContains(t, resp, model.WorkspaceAvailable)

	resp = client.PUT(t, "/api/v1/workspaces/id/"+created.ID+"/availability", map[string]bool{
		"is_available": false,
	})
	testutil.AssertStatusCode(t, resp, http.StatusNoContent)

	resp = client.GET(t, "/api/v1/workspaces/id/"+created.ID+"/status")
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	testutil.AssertContains(t, resp, model.WorkspaceUnavailable)
}

func TestSetAvailability_MissingFlag(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	created := createWorkspace(t, client, testutil.ValidWorkspace())

	resp := client.PUT(t, "/api/v1/workspaces/id/"+created.ID+"/availability", map[string]string{})
	testutil.AssertStatusCode(t, resp, http.StatusBadRequest)
}
