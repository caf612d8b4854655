package handlers

import (
	"net/http"
	"testing"
)

func TestCreateUser_ThenListContainsExactlyOne(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	rec := env.mustDo(t, http.MethodPost, "/users", `{"id":"u1","name":"Ana","email":"a@x.com","password":"p"}`, http.StatusOK)
	if rec.Body.String() == "" {
		t.Fatalf("expected a success message")
	}

	users := env.listUsers(t, "/users")
	matches := 0
	for _, u := range users {
		if u.ID == "u1" {
			matches++
			if u.Name != "Ana" || u.Email != "a@x.com" || u.Password != "p" {
				t.Fatalf("unexpected user %#v", u)
			}
		}
	}
	if matches != 1 {
		t.Fatalf("expected exactly one u1, got %d", matches)
	}
}

func TestGetUsers_EmptyIsArray(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	rec := env.mustDo(t, http.MethodGet, "/users", "", http.StatusOK)
	if rec.Body.String() != "[]" {
		t.Fatalf("expected [], got %q", rec.Body.String())
	}
}

func TestGetUsers_SearchByName(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.createUser(t, "u1", "Ana", "a@x.com", "p")
	env.createUser(t, "u2", "Bruno", "b@x.com", "p")
	env.createUser(t, "u3", "Mariana", "m@x.com", "p")

	users := env.listUsers(t, "/users?q=ana")
	if len(users) != 2 || users[0].ID != "u1" || users[1].ID != "u3" {
		t.Fatalf("expected [u1 u3], got %#v", users)
	}

	// q present but empty matches everything
	if all := env.listUsers(t, "/users?q="); len(all) != 3 {
		t.Fatalf("expected 3 users for empty q, got %d", len(all))
	}
}

func TestCreateUser_Validation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		body string
	}{
		{"wrong type", `{"id":1,"name":"Ana","email":"a@x.com","password":"p"}`},
		{"missing field", `{"id":"u1","name":"Ana","email":"a@x.com"}`},
		{"empty field", `{"id":"u1","name":"","email":"a@x.com","password":"p"}`},
		{"empty body", ``},
		{"invalid json", `{"id":`},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(t)
			env.mustDo(t, http.MethodPost, "/users", tc.body, http.StatusBadRequest)

			if users := env.listUsers(t, "/users"); len(users) != 0 {
				t.Fatalf("expected no users stored, got %d", len(users))
			}
		})
	}
}

func TestCreateUser_DuplicateIDOrEmail(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.createUser(t, "u1", "Ana", "a@x.com", "p")

	env.mustDo(t, http.MethodPost, "/users", `{"id":"u1","name":"Other","email":"o@x.com","password":"p"}`, http.StatusBadRequest)
	env.mustDo(t, http.MethodPost, "/users", `{"id":"u2","name":"Other","email":"a@x.com","password":"p"}`, http.StatusBadRequest)

	if users := env.listUsers(t, "/users"); len(users) != 1 {
		t.Fatalf("expected 1 user, got %d", len(users))
	}
}

func TestDeleteUser_NotFoundLeavesStoreUnchanged(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.createUser(t, "u1", "Ana", "a@x.com", "p")
	before := env.mustDo(t, http.MethodGet, "/users", "", http.StatusOK).Body.String()

	env.mustDo(t, http.MethodDelete, "/users/missing", "", http.StatusNotFound)

	after := env.mustDo(t, http.MethodGet, "/users", "", http.StatusOK).Body.String()
	if before != after {
		t.Fatalf("store changed after failed delete:\n%s\n%s", before, after)
	}
}

func TestDeleteUser_RemovesAssignmentsThenUser(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.createUser(t, "u1", "Ana", "a@x.com", "p")
	env.createUser(t, "u2", "Bia", "b@x.com", "p")
	env.createTask(t, "t1", "Write", "doc")
	env.createTask(t, "t2", "Read", "book")
	env.assign(t, "t1", "u1")
	env.assign(t, "t2", "u1")
	env.assign(t, "t1", "u1")
	env.assign(t, "t1", "u2")

	env.mustDo(t, http.MethodDelete, "/users/u1", "", http.StatusOK)

	if n := env.assignmentCount(t, "user_id", "u1"); n != 0 {
		t.Fatalf("expected no assignments for u1, got %d", n)
	}
	if n := env.assignmentCount(t, "user_id", "u2"); n != 1 {
		t.Fatalf("expected u2 assignment to survive, got %d", n)
	}
	users := env.listUsers(t, "/users")
	if len(users) != 1 || users[0].ID != "u2" {
		t.Fatalf("expected only u2 left, got %#v", users)
	}
}
