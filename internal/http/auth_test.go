package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestLoginSuccessAndFailure(t *testing.T) {
	app, _, _ := newTestApp(t)

	loginResp, _ := app.Test(httptest.NewRequest("GET", "/login", nil))
	csrfTok := extractCookie(loginResp, "csrf_")
	if csrfTok == "" {
		t.Fatal("csrf token missing")
	}

	post := func(username, password string) *http.Response {
		form := strings.NewReader("csrf=" + csrfTok + "&username=" + username + "&password=" + password)
		req := httptest.NewRequest("POST", "/login", form)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.AddCookie(&http.Cookie{Name: "csrf_", Value: csrfTok})
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		return resp
	}

	if resp := post("alice", "wrongpass1"); resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad creds: expected 401, got %d", resp.StatusCode)
	}
	resp := post("alice", "Passw0rd!")
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("good creds: expected redirect, got %d", resp.StatusCode)
	}
	if extractCookie(resp, "sid") == "" {
		t.Fatal("sid cookie not set on login")
	}
}

func TestRegisterCreatesAccountAndSignsIn(t *testing.T) {
	app, db, _ := newTestApp(t)

	regResp, _ := app.Test(httptest.NewRequest("GET", "/register", nil))
	csrfTok := extractCookie(regResp, "csrf_")

	form := strings.NewReader("csrf=" + csrfTok + "&username=carol&password=S3curepass&password2=S3curepass")
	req := httptest.NewRequest("POST", "/register", form)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "csrf_", Value: csrfTok})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected redirect after registration, got %d", resp.StatusCode)
	}
	sid := extractCookie(resp, "sid")
	if sid == "" {
		t.Fatal("registration should establish a session")
	}

	var role string
	if err := db.Get(&role, `SELECT role FROM users WHERE username='carol'`); err != nil {
		t.Fatalf("account not created: %v", err)
	}
	if role != "USER" {
		t.Fatalf("expected USER role, got %s", role)
	}

	// duplicate username rejected
	regResp, _ = app.Test(httptest.NewRequest("GET", "/register", nil))
	csrfTok = extractCookie(regResp, "csrf_")
	form = strings.NewReader("csrf=" + csrfTok + "&username=carol&password=S3curepass&password2=S3curepass")
	req = httptest.NewRequest("POST", "/register", form)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "csrf_", Value: csrfTok})
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("duplicate username: expected 400, got %d", resp.StatusCode)
	}
}

func TestWeakPasswordRejected(t *testing.T) {
	app, _, _ := newTestApp(t)

	regResp, _ := app.Test(httptest.NewRequest("GET", "/register", nil))
	csrfTok := extractCookie(regResp, "csrf_")

	form := strings.NewReader("csrf=" + csrfTok + "&username=dave&password=short&password2=short")
	req := httptest.NewRequest("POST", "/register", form)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "csrf_", Value: csrfTok})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("weak password: expected 400, got %d", resp.StatusCode)
	}
}
