package models

import (
	"encoding/json"
	"errors"
	"testing"

	"users-tasks-service/apperr"
)

func decode[T any](t *testing.T, body string) T {
	t.Helper()

	var out T
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		t.Fatalf("decode %q: %v", body, err)
	}
	return out
}

func wantValidation(t *testing.T, err error) {
	t.Helper()

	var e *apperr.Error
	if !errors.As(err, &e) || e.Kind != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateUserRequest_Validate(t *testing.T) {
	t.Parallel()

	req := decode[CreateUserRequest](t, `{"id":"u1","name":"Ana","email":"a@x.com","password":"p"}`)
	user, err := req.Validate()
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if user != (User{ID: "u1", Name: "Ana", Email: "a@x.com", Password: "p"}) {
		t.Fatalf("unexpected user %#v", user)
	}

	// type errors win over missing values
	_, err = decode[CreateUserRequest](t, `{"id":"","name":1,"email":"a@x.com","password":"p"}`).Validate()
	wantValidation(t, err)
	if err.Error() != msgUserWrongTypes {
		t.Fatalf("expected type message, got %q", err.Error())
	}

	_, err = decode[CreateUserRequest](t, `{"id":"u1","name":"Ana","email":"","password":"p"}`).Validate()
	wantValidation(t, err)
	if err.Error() != msgUserMissingFields {
		t.Fatalf("expected missing fields message, got %q", err.Error())
	}
}

func TestCreateTaskRequest(t *testing.T) {
	t.Parallel()

	req := decode[CreateTaskRequest](t, `{"id":"t1","title":"","description":""}`)
	if id, ok := req.CandidateID(); !ok || id != "t1" {
		t.Fatalf("expected candidate id t1, got %q %v", id, ok)
	}
	task, err := req.Validate()
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if task.ID != "t1" || task.Title != "" {
		t.Fatalf("unexpected task %#v", task)
	}

	req = decode[CreateTaskRequest](t, `{"id":3,"title":"x","description":"y"}`)
	if _, ok := req.CandidateID(); ok {
		t.Fatalf("expected no candidate id for a numeric id")
	}
	_, err = req.Validate()
	wantValidation(t, err)
}

func TestUpdateTaskRequest_Apply(t *testing.T) {
	t.Parallel()

	current := Task{ID: "t1", Title: "Write", Description: "doc", Status: StatusDone}

	cases := []struct {
		name    string
		body    string
		want    Task
		wantErr bool
	}{
		{"title only", `{"title":"Rewrite"}`, Task{ID: "t1", Title: "Rewrite", Description: "doc", Status: StatusDone}, false},
		{"all fields", `{"id":"t2","title":"a","description":"b"}`, Task{ID: "t2", Title: "a", Description: "b", Status: StatusDone}, false},
		{"falsy values keep", `{"id":"","title":null,"description":0}`, current, false},
		{"empty body", `{}`, current, false},
		{"truthy non-string", `{"description":true}`, Task{}, true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := decode[UpdateTaskRequest](t, tc.body).Apply(current)
			if tc.wantErr {
				wantValidation(t, err)
				return
			}
			if err != nil {
				t.Fatalf("Apply returned error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %#v, got %#v", tc.want, got)
			}
		})
	}
}

func TestTaskWithUsers_JSONFlattensTask(t *testing.T) {
	t.Parallel()

	raw, err := json.Marshal(TaskWithUsers{
		Task:         Task{ID: "t1", Title: "Write", Description: "doc"},
		Responsibles: []User{},
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	out := decode[map[string]any](t, string(raw))
	if out["id"] != "t1" || out["title"] != "Write" {
		t.Fatalf("expected task fields at top level, got %s", raw)
	}
	if list, ok := out["responsibles"].([]any); !ok || len(list) != 0 {
		t.Fatalf("expected empty responsibles array, got %s", raw)
	}
}
