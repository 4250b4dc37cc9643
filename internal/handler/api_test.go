// Copyright (c) 2025-2026 BrightPath HR
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/brightpathhr/brightpath/internal/service"
)

func TestServiceCRUDAndVisibility(t *testing.T) {
	app := newTestApp(t)
	app.runSetup(t)
	cookie := app.login(t, testAdminEmail, testAdminPassword)

	// Slug is derived from the title when omitted.
	w := app.do(t, http.MethodPost, "/api/admin/services", CreateServiceRequest{
		Title:    "Executive Coaching",
		Summary:  "1:1 coaching for senior leaders",
		Features: []string{"360 feedback", "Monthly sessions"},
	}, cookie)
	if w.Code != http.StatusCreated {
		t.Fatalf("create service = %d %s", w.Code, w.Body.String())
	}
	var svc ServiceResponse
	decodeData(t, w, &svc)
	if svc.Slug != "executive-coaching" {
		t.Errorf("derived slug = %q", svc.Slug)
	}
	if len(svc.Features) != 2 {
		t.Errorf("features = %v", svc.Features)
	}
	if svc.Published {
		t.Error("new service should default to unpublished")
	}

	// Unpublished rows are invisible to the public surface.
	var list []ServiceResponse
	w = app.do(t, http.MethodGet, "/api/services", nil)
	decodeData(t, w, &list)
	if len(list) != 0 {
		t.Errorf("public list sees %d unpublished services", len(list))
	}
	w = app.do(t, http.MethodGet, "/api/services/executive-coaching", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("public get of unpublished service = %d, want 404", w.Code)
	}

	// ?all=true only works behind the back office.
	w = app.do(t, http.MethodGet, "/api/services?all=true", nil)
	decodeData(t, w, &list)
	if len(list) != 0 {
		t.Errorf("anonymous ?all=true sees %d services", len(list))
	}
	w = app.do(t, http.MethodGet, "/api/admin/services?all=true", nil, cookie)
	decodeData(t, w, &list)
	if len(list) != 1 {
		t.Errorf("admin ?all=true sees %d services, want 1", len(list))
	}

	// Publish via a partial update; other fields stay put.
	published := true
	w = app.do(t, http.MethodPatch, fmt.Sprintf("/api/admin/services/%d", svc.ID),
		UpdateServiceRequest{Published: &published}, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("publish service = %d %s", w.Code, w.Body.String())
	}
	var updated ServiceResponse
	decodeData(t, w, &updated)
	if !updated.Published || updated.Title != "Executive Coaching" {
		t.Errorf("after publish: %+v", updated)
	}

	w = app.do(t, http.MethodGet, "/api/services/executive-coaching", nil)
	if w.Code != http.StatusOK {
		t.Errorf("public get of published service = %d", w.Code)
	}

	// Invalid slugs are rejected on update.
	bad := "Not A Slug"
	w = app.do(t, http.MethodPatch, fmt.Sprintf("/api/admin/services/%d", svc.ID),
		UpdateServiceRequest{Slug: &bad}, cookie)
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid slug update = %d, want 400", w.Code)
	}

	w = app.do(t, http.MethodDelete, fmt.Sprintf("/api/admin/services/%d", svc.ID), nil, cookie)
	if w.Code != http.StatusOK {
		t.Errorf("delete service = %d", w.Code)
	}
	w = app.do(t, http.MethodDelete, fmt.Sprintf("/api/admin/services/%d", svc.ID), nil, cookie)
	if w.Code != http.StatusNotFound {
		t.Errorf("second delete = %d, want 404", w.Code)
	}
}

func TestCorruptStoredArraySurfacesAsInternalError(t *testing.T) {
	app := newTestApp(t)
	app.runSetup(t)
	cookie := app.login(t, testAdminEmail, testAdminPassword)

	w := app.do(t, http.MethodPost, "/api/admin/services", CreateServiceRequest{
		Title:     "HR Audit",
		Features:  []string{"Gap analysis"},
		Published: true,
	}, cookie)
	if w.Code != http.StatusCreated {
		t.Fatalf("create service = %d %s", w.Code, w.Body.String())
	}
	var svc ServiceResponse
	decodeData(t, w, &svc)

	// Array columns are validated at write time; a corrupted row must
	// surface as a 500, not as a silently emptied field.
	if _, err := app.db.Exec("UPDATE services SET features = '{not json' WHERE id = ?", svc.ID); err != nil {
		t.Fatalf("corrupting features column: %v", err)
	}

	w = app.do(t, http.MethodGet, "/api/services/"+svc.Slug, nil)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("detail with corrupt features = %d, want 500", w.Code)
	}
	w = app.do(t, http.MethodGet, "/api/services", nil)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("list with corrupt features = %d, want 500", w.Code)
	}
	env := decodeEnvelope(t, w)
	if env.Success || env.Error != "Internal server error" {
		t.Errorf("error envelope = %+v", env)
	}
}

func TestCreateLeadEndpoint(t *testing.T) {
	app := newTestApp(t)
	app.runSetup(t)

	w := app.do(t, http.MethodPost, "/api/leads", CreateLeadRequest{Name: "Dana"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("lead without email = %d, want 400", w.Code)
	}
	w = app.do(t, http.MethodPost, "/api/leads", CreateLeadRequest{Name: "Dana", Email: "not an email"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("lead with bad email = %d, want 400", w.Code)
	}

	w = app.do(t, http.MethodPost, "/api/leads", CreateLeadRequest{
		Name:            "Dana",
		Email:           "dana@example.com",
		Company:         "Acme",
		ServiceInterest: "hr-audit",
		Message:         "Looking for a compliance review.",
		Source:          "website",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create lead = %d %s", w.Code, w.Body.String())
	}
	var lead LeadResponse
	decodeData(t, w, &lead)
	if lead.Status != "new" {
		t.Errorf("new lead status = %q", lead.Status)
	}
	if lead.Browser != "Unknown" || lead.Device != "desktop" {
		t.Errorf("lead intake metadata = %q/%q", lead.Browser, lead.Device)
	}
	if lead.Country != "" {
		t.Errorf("lead country = %q, want empty with geoip disabled", lead.Country)
	}

	// Captured leads show up on the admin surface.
	cookie := app.login(t, testAdminEmail, testAdminPassword)
	var list []LeadResponse
	w = app.do(t, http.MethodGet, "/api/admin/leads", nil, cookie)
	decodeData(t, w, &list)
	if len(list) != 1 || list[0].Email != "dana@example.com" {
		t.Errorf("admin lead list = %+v", list)
	}

	// Status advancement rejects unknown values.
	badStatus := "bogus"
	w = app.do(t, http.MethodPatch, fmt.Sprintf("/api/admin/leads/%d", lead.ID),
		UpdateLeadRequest{Status: &badStatus}, cookie)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bogus lead status = %d, want 400", w.Code)
	}
	contacted := "contacted"
	w = app.do(t, http.MethodPatch, fmt.Sprintf("/api/admin/leads/%d", lead.ID),
		UpdateLeadRequest{Status: &contacted}, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("advance lead status = %d %s", w.Code, w.Body.String())
	}
	decodeData(t, w, &lead)
	if lead.Status != "contacted" {
		t.Errorf("advanced status = %q", lead.Status)
	}
}

func TestCreateBookingEndpoint(t *testing.T) {
	app := newTestApp(t)
	app.runSetup(t)

	w := app.do(t, http.MethodPost, "/api/bookings", CreateBookingRequest{
		Name: "Sam", Email: "sam@example.com",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("booking without date = %d, want 400", w.Code)
	}
	w = app.do(t, http.MethodPost, "/api/bookings", CreateBookingRequest{
		Name: "Sam", Email: "sam@example.com", PreferredDate: "next tuesday",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("booking with freeform date = %d, want 400", w.Code)
	}

	w = app.do(t, http.MethodPost, "/api/bookings", CreateBookingRequest{
		Name:          "Sam",
		Email:         "sam@example.com",
		ServiceType:   "consultation",
		PreferredDate: "2031-06-15",
		PreferredTime: "10:00",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create booking = %d %s", w.Code, w.Body.String())
	}
	var booking BookingResponse
	decodeData(t, w, &booking)
	if booking.Status != "pending" {
		t.Errorf("new booking status = %q", booking.Status)
	}

	cookie := app.login(t, testAdminEmail, testAdminPassword)
	var list []BookingResponse
	w = app.do(t, http.MethodGet, "/api/admin/bookings?upcoming=true", nil, cookie)
	decodeData(t, w, &list)
	if len(list) != 1 {
		t.Errorf("upcoming bookings = %d, want 1", len(list))
	}
}

func TestSettingsEndpoints(t *testing.T) {
	app := newTestApp(t)
	app.runSetup(t)
	cookie := app.login(t, testAdminEmail, testAdminPassword)

	w := app.do(t, http.MethodPatch, "/api/admin/settings",
		UpdateSettingsRequest{"site_tagline": "People-first HR"}, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("update settings = %d %s", w.Code, w.Body.String())
	}

	// The public endpoint hides the setup sentinel.
	var public map[string]string
	w = app.do(t, http.MethodGet, "/api/settings", nil)
	decodeData(t, w, &public)
	if public["site_tagline"] != "People-first HR" {
		t.Errorf("public settings = %v", public)
	}
	if _, ok := public["setup_complete"]; ok {
		t.Error("setup_complete leaked through the public settings endpoint")
	}

	// The admin endpoint includes it.
	var adminSettings map[string]string
	w = app.do(t, http.MethodGet, "/api/admin/settings", nil, cookie)
	decodeData(t, w, &adminSettings)
	if adminSettings["setup_complete"] != "true" {
		t.Errorf("admin settings = %v", adminSettings)
	}

	// The sentinel cannot be modified through the API.
	w = app.do(t, http.MethodPatch, "/api/admin/settings",
		UpdateSettingsRequest{"setup_complete": "false"}, cookie)
	if w.Code != http.StatusBadRequest {
		t.Errorf("patching setup_complete = %d, want 400", w.Code)
	}
	w = app.do(t, http.MethodPatch, "/api/admin/settings", UpdateSettingsRequest{}, cookie)
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty settings patch = %d, want 400", w.Code)
	}
}

func TestAdminUserEndpoints(t *testing.T) {
	app := newTestApp(t)
	app.runSetup(t)
	cookie := app.login(t, testAdminEmail, testAdminPassword)

	w := app.do(t, http.MethodPost, "/api/admin/users", CreateAdminUserRequest{
		Email: "new@brightpathhr.test", Password: "long-enough-1", Role: "superuser",
	}, cookie)
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown role = %d, want 400", w.Code)
	}
	w = app.do(t, http.MethodPost, "/api/admin/users", CreateAdminUserRequest{
		Email: "new@brightpathhr.test", Password: "short", Role: "editor",
	}, cookie)
	if w.Code != http.StatusBadRequest {
		t.Errorf("short password = %d, want 400", w.Code)
	}
	w = app.do(t, http.MethodPost, "/api/admin/users", CreateAdminUserRequest{
		Email: testAdminEmail, Password: "long-enough-1", Role: "editor",
	}, cookie)
	if w.Code != http.StatusBadRequest {
		t.Errorf("duplicate email = %d, want 400", w.Code)
	}

	w = app.do(t, http.MethodPost, "/api/admin/users", CreateAdminUserRequest{
		Email: "editor@brightpathhr.test", Password: "long-enough-1", Name: "Eddie", Role: "editor",
	}, cookie)
	if w.Code != http.StatusCreated {
		t.Fatalf("create editor = %d %s", w.Code, w.Body.String())
	}
	var editor AdminUserResponse
	decodeData(t, w, &editor)
	if editor.Role != "editor" {
		t.Errorf("created role = %q", editor.Role)
	}

	// The last admin-role account cannot be deleted; the setup admin is
	// still the only one.
	var admins []AdminUserResponse
	w = app.do(t, http.MethodGet, "/api/admin/users", nil, cookie)
	decodeData(t, w, &admins)
	var adminID int64
	for _, u := range admins {
		if u.Role == "admin" {
			adminID = u.ID
		}
	}
	w = app.do(t, http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", adminID), nil, cookie)
	if w.Code != http.StatusBadRequest {
		t.Errorf("delete last admin = %d, want 400", w.Code)
	}

	// Editors go without a fight.
	w = app.do(t, http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", editor.ID), nil, cookie)
	if w.Code != http.StatusOK {
		t.Errorf("delete editor = %d", w.Code)
	}
}

func TestMediaUploadEndpoint(t *testing.T) {
	app := newTestApp(t)
	app.runSetup(t)
	cookie := app.login(t, testAdminEmail, testAdminPassword)

	upload := func(t *testing.T, field, filename, contentType string, data []byte) *httptest.ResponseRecorder {
		t.Helper()

		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		part, err := mw.CreatePart(textproto.MIMEHeader{
			"Content-Disposition": {fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename)},
			"Content-Type":        {contentType},
		})
		if err != nil {
			t.Fatalf("creating multipart part: %v", err)
		}
		if _, err := part.Write(data); err != nil {
			t.Fatalf("writing multipart part: %v", err)
		}
		if err := mw.Close(); err != nil {
			t.Fatalf("closing multipart writer: %v", err)
		}

		r := httptest.NewRequest(http.MethodPost, "/api/admin/media", &buf)
		r.Header.Set("Content-Type", mw.FormDataContentType())
		r.AddCookie(cookie)
		w := httptest.NewRecorder()
		app.router.ServeHTTP(w, r)
		return w
	}

	photo := pngBytes(t, 64, 48)

	w := upload(t, "file", "team-photo.png", "image/png", photo)
	if w.Code != http.StatusCreated {
		t.Fatalf("upload = %d %s", w.Code, w.Body.String())
	}
	var media MediaResponse
	decodeData(t, w, &media)
	if media.OriginalName != "team-photo.png" {
		t.Errorf("original name = %q", media.OriginalName)
	}
	if media.Width == nil || *media.Width != 64 {
		t.Errorf("width = %v", media.Width)
	}
	if media.UploadedBy == nil {
		t.Error("uploaded_by should record the authenticated admin")
	}
	if media.URL == "" || media.ThumbnailURL == "" {
		t.Errorf("urls = %q / %q", media.URL, media.ThumbnailURL)
	}

	w = upload(t, "file", "contract.pdf", "application/pdf", []byte("%PDF-1.4 not really"))
	if w.Code != http.StatusBadRequest {
		t.Errorf("pdf upload = %d, want 400", w.Code)
	}

	w = upload(t, "attachment", "photo.png", "image/png", photo)
	if w.Code != http.StatusBadRequest {
		t.Errorf("wrong field name = %d, want 400", w.Code)
	}

	// The uploaded file appears in the listing and can be deleted by an
	// admin.
	var list []MediaResponse
	w2 := app.do(t, http.MethodGet, "/api/admin/media", nil, cookie)
	decodeData(t, w2, &list)
	if len(list) != 1 {
		t.Fatalf("media list = %d entries, want 1", len(list))
	}
	w2 = app.do(t, http.MethodDelete, fmt.Sprintf("/api/admin/media/%d", media.ID), nil, cookie)
	if w2.Code != http.StatusOK {
		t.Errorf("delete media = %d", w2.Code)
	}
	w2 = app.do(t, http.MethodGet, fmt.Sprintf("/api/admin/media/%d", media.ID), nil, cookie)
	if w2.Code != http.StatusNotFound {
		t.Errorf("get deleted media = %d, want 404", w2.Code)
	}
}

// pngBytes encodes a solid-color PNG for upload tests.
func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 30, G: 90, B: 160, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding test PNG: %v", err)
	}
	return buf.Bytes()
}

func TestStatsEndpoint(t *testing.T) {
	app := newTestApp(t)
	app.runSetup(t)
	cookie := app.login(t, testAdminEmail, testAdminPassword)

	w := app.do(t, http.MethodPost, "/api/leads", CreateLeadRequest{
		Name: "Dana", Email: "dana@example.com",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create lead = %d", w.Code)
	}

	var stats service.DashboardStats
	w = app.do(t, http.MethodGet, "/api/admin/stats", nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("stats = %d %s", w.Code, w.Body.String())
	}
	decodeData(t, w, &stats)

	if stats.Leads["new"] != 1 || stats.Leads["total"] != 1 {
		t.Errorf("lead stats = %v", stats.Leads)
	}
	// Every known status is present even at zero.
	for _, status := range []string{"contacted", "qualified", "converted", "lost"} {
		if _, ok := stats.Leads[status]; !ok {
			t.Errorf("lead stats missing %q: %v", status, stats.Leads)
		}
	}
	if stats.Bookings["total"] != 0 {
		t.Errorf("booking stats = %v", stats.Bookings)
	}
	if stats.Services.Total != 0 {
		t.Errorf("service counts = %+v", stats.Services)
	}
}
