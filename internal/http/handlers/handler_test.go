package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"vertical/backend/internal/config"
	"vertical/backend/internal/models"
	"vertical/backend/internal/phpserial"

	"golang.org/x/crypto/bcrypt"
)

func newTestHandler(cfg *config.Config) *Handler {
	if cfg == nil {
		cfg = &config.Config{}
	}
	return New(nil, nil, nil, nil, cfg, nil)
}

func TestPositiveID(t *testing.T) {
	cases := []struct {
		query string
		want  int64
		ok    bool
	}{
		{"event_id=42", 42, true},
		{"event_id=0", 0, false},
		{"event_id=-5", 0, false},
		{"event_id=abc", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		r := httptest.NewRequest(http.MethodGet, "/?"+c.query, nil)
		got, ok := positiveID(r, "event_id")
		if got != c.want || ok != c.ok {
			t.Fatalf("positiveID(%q) = (%d, %v), want (%d, %v)", c.query, got, ok, c.want, c.ok)
		}
	}
}

func TestPagination(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	limit, offset, ok := pagination(r)
	if !ok || limit != defaultLimit || offset != 0 {
		t.Fatalf("defaults = (%d, %d, %v)", limit, offset, ok)
	}

	r = httptest.NewRequest(http.MethodGet, "/?limit=25&offset=50", nil)
	limit, offset, ok = pagination(r)
	if !ok || limit != 25 || offset != 50 {
		t.Fatalf("explicit = (%d, %d, %v)", limit, offset, ok)
	}

	for _, query := range []string{"limit=0", "limit=501", "limit=-1", "offset=-1", "limit=x"} {
		r = httptest.NewRequest(http.MethodGet, "/?"+query, nil)
		if _, _, ok := pagination(r); ok {
			t.Fatalf("pagination(%q) should be rejected", query)
		}
	}
}

func TestEventQueryFromRequest(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?timeframe=week", nil)
	q, ok := eventQueryFromRequest(r)
	if !ok || q.Timeframe != "week" {
		t.Fatalf("week = (%+v, %v)", q, ok)
	}

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	q, ok = eventQueryFromRequest(r)
	if !ok || q.Timeframe != "default" {
		t.Fatalf("missing timeframe = (%+v, %v)", q, ok)
	}

	r = httptest.NewRequest(http.MethodGet, "/?timeframe=custom&start_date=2024-06-01&end_date=2024-06-30", nil)
	q, ok = eventQueryFromRequest(r)
	if !ok || q.StartDate != "2024-06-01" || q.EndDate != "2024-06-30" {
		t.Fatalf("custom = (%+v, %v)", q, ok)
	}

	for _, query := range []string{
		"timeframe=bogus",
		"timeframe=custom",
		"timeframe=custom&start_date=2024-06-01",
		"timeframe=custom&start_date=junk&end_date=2024-06-30",
	} {
		r = httptest.NewRequest(http.MethodGet, "/?"+query, nil)
		if _, ok := eventQueryFromRequest(r); ok {
			t.Fatalf("query %q should be rejected", query)
		}
	}
}

func TestRotateAPIKeyDisabled(t *testing.T) {
	h := newTestHandler(&config.Config{})
	req := httptest.NewRequest(http.MethodPost, "/vdriver/v1/admin/api-key", strings.NewReader(`{"password":"x","new_key":"0123456789abcdef"}`))
	rec := httptest.NewRecorder()
	h.RotateAPIKey(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403 when admin is disabled", rec.Code)
	}
}

func TestRotateAPIKeyBadPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	h := newTestHandler(&config.Config{AdminPassHash: string(hash)})

	req := httptest.NewRequest(http.MethodPost, "/vdriver/v1/admin/api-key", strings.NewReader(`{"password":"wrong","new_key":"0123456789abcdef"}`))
	rec := httptest.NewRecorder()
	h.RotateAPIKey(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403 on bad password", rec.Code)
	}
}

func TestRotateAPIKeyShortKey(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	h := newTestHandler(&config.Config{AdminPassHash: string(hash)})

	req := httptest.NewRequest(http.MethodPost, "/vdriver/v1/admin/api-key", strings.NewReader(`{"password":"correct","new_key":"short"}`))
	rec := httptest.NewRecorder()
	h.RotateAPIKey(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 on short key", rec.Code)
	}
}

func TestListEventsRejectsBadTimeframe(t *testing.T) {
	h := newTestHandler(nil)
	req := httptest.NewRequest(http.MethodGet, "/vdriver/v1/events?timeframe=bogus", nil)
	rec := httptest.NewRecorder()
	h.ListEvents(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestGetEventRejectsBadID(t *testing.T) {
	h := newTestHandler(nil)
	req := httptest.NewRequest(http.MethodGet, "/vdriver/v1/event?event_id=-1", nil)
	rec := httptest.NewRecorder()
	h.GetEvent(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestBookingStatusFilter(t *testing.T) {
	cases := []struct {
		query string
		want  string
		ok    bool
	}{
		{"", bookingFilterValidated, true},
		{"status=validated", bookingFilterValidated, true},
		{"status=all", bookingFilterAll, true},
		{"status=pending", "", false},
		{"status=1", "", false},
	}
	for _, c := range cases {
		r := httptest.NewRequest(http.MethodGet, "/?"+c.query, nil)
		got, ok := bookingStatusFilter(r)
		if got != c.want || ok != c.ok {
			t.Fatalf("bookingStatusFilter(%q) = (%q, %v), want (%q, %v)", c.query, got, ok, c.want, c.ok)
		}
	}
}

func TestListEventBookingsRejectsBadStatus(t *testing.T) {
	h := newTestHandler(nil)
	req := httptest.NewRequest(http.MethodGet, "/vdriver/v1/event-bookings?event_id=42&status=pending", nil)
	rec := httptest.NewRecorder()
	h.ListEventBookings(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCreateCommentRequiresEventID(t *testing.T) {
	h := newTestHandler(nil)
	req := httptest.NewRequest(http.MethodPost, "/vdriver/v1/events/comment", strings.NewReader(`{"user_id":12,"content":"hello"}`))
	rec := httptest.NewRecorder()
	h.CreateComment(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 without event_id", rec.Code)
	}
}

func TestRoleMetaStripping(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/vdriver/v1/roles", nil)
	if includeRoleMeta(r) {
		t.Fatal("meta should be stripped by default")
	}
	r = httptest.NewRequest(http.MethodGet, "/vdriver/v1/roles?with_meta=1", nil)
	if !includeRoleMeta(r) {
		t.Fatal("with_meta=1 should keep the blobs")
	}

	caps := phpserial.MapValue(map[string]phpserial.Value{"read": phpserial.BoolValue(true)})
	cat := models.RoleCatalogue{
		WordPress:      []models.Role{{RoleKey: "editor", Name: "Editor", Capabilities: &caps}},
		UltimateMember: []models.Role{{RoleKey: "um_driver", Name: "Driver", Meta: &caps}},
	}
	stripRoleMeta(&cat)
	if cat.WordPress[0].Capabilities != nil || cat.UltimateMember[0].Meta != nil {
		t.Fatalf("blobs should be cleared, got %+v", cat)
	}
}

func TestUserProfileByEmailRejectsBadEmail(t *testing.T) {
	h := newTestHandler(nil)
	req := httptest.NewRequest(http.MethodGet, "/vdriver/v1/user-profile/by-email?email=not-an-email", nil)
	rec := httptest.NewRecorder()
	h.UserProfileByEmail(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
