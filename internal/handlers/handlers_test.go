package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gotera/internal/graphql"
	"gotera/internal/models"
	"gotera/internal/repository"
	"gotera/internal/security"
	"gotera/internal/service"
	"gotera/internal/session"
	"gotera/internal/validation"
	"gotera/web"
)

type apiCall struct {
	Op    string
	Query string
	Vars  map[string]any
	Auth  string
}

// fakeAPI is a GraphQL endpoint answering by operation name.
type fakeAPI struct {
	mu    sync.Mutex
	data  map[string]string
	errs  map[string]string
	calls []apiCall
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{data: map[string]string{}, errs: map[string]string{}}
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query         string         `json:"query"`
		OperationName string         `json:"operationName"`
		Variables     map[string]any `json:"variables"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	f.calls = append(f.calls, apiCall{Op: req.OperationName, Query: req.Query, Vars: req.Variables, Auth: r.Header.Get("Authorization")})
	data, errMsg := f.data[req.OperationName], f.errs[req.OperationName]
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if errMsg != "" {
		fmt.Fprintf(w, `{"data":null,"errors":[{"message":%q}]}`, errMsg)
		return
	}
	if data == "" {
		data = "null"
	}
	fmt.Fprintf(w, `{"data":%s}`, data)
}

func (f *fakeAPI) respond(op, data string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[op] = data
	delete(f.errs, op)
}

func (f *fakeAPI) fail(op, msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[op] = msg
}

func (f *fakeAPI) callsTo(op string) []apiCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []apiCall
	for _, c := range f.calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

type testApp struct {
	api       *fakeAPI
	handler   http.Handler
	persister *session.MemoryPersister
	signer    *security.SessionSigner
	csrf      *security.CSRFGenerator
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	api := newFakeAPI()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	client := graphql.NewClient(srv.URL)
	persister := session.NewMemoryPersister()
	signer := security.NewSessionSigner("test-secret", time.Hour)
	csrf := security.NewCSRFGenerator("test-secret")
	manager := session.NewManager(persister, repository.NewAuthRepository(client), signer, time.Hour)
	mw := NewMiddleware(manager, csrf, security.NewRateLimiter(ctx, 100, time.Minute))

	tmpl, err := web.Templates(TemplateFuncs())
	require.NoError(t, err)

	v := validation.New()
	members := repository.NewMemberRepository(client, 10)
	meetups := repository.NewMeetupRepository(client)
	h := NewHandlers(Deps{
		Renderer:          NewRenderer(tmpl, mw),
		Middleware:        mw,
		Validator:         v,
		PageSize:          10,
		AuthService:       service.NewAuthService(manager, v),
		MemberService:     service.NewMemberService(members, nil, v),
		AttendanceService: service.NewAttendanceService(meetups, v),
		Members:           members,
		Families:          repository.NewFamilyRepository(client),
		Ministries:        repository.NewMinistryRepository(client),
		Meetups:           meetups,
		Professions:       repository.NewProfessionRepository(client),
		Locations:         repository.NewLocationRepository(client),
		Lookups:           repository.NewLookupRepository(client),
		Activity:          repository.NewActivityRepository(client, 10),
	})

	mux := http.NewServeMux()
	h.Register(mux)

	return &testApp{
		api:       api,
		handler:   mw.Session(mux),
		persister: persister,
		signer:    signer,
		csrf:      csrf,
	}
}

// signIn persists a signed-in session for user and returns its cookie.
func (a *testApp) signIn(t *testing.T, user models.User) *http.Cookie {
	t.Helper()
	id := "session-" + user.ID
	raw, err := json.Marshal(models.AuthSnapshot{Token: "token-" + user.ID, User: user})
	require.NoError(t, err)
	require.NoError(t, a.persister.Set(context.Background(), id, session.KeyAuth, raw, time.Hour))

	value, err := a.signer.Sign(id)
	require.NoError(t, err)
	return &http.Cookie{Name: session.CookieName, Value: value}
}

func (a *testApp) get(path string, cookie *http.Cookie, htmx bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if htmx {
		req.Header.Set(hxRequestHeader, "true")
	}
	return a.do(req, cookie)
}

func (a *testApp) post(t *testing.T, path string, form url.Values, cookie *http.Cookie, htmx bool) *httptest.ResponseRecorder {
	t.Helper()
	if form == nil {
		form = url.Values{}
	}
	if cookie != nil {
		id, err := a.signer.Verify(cookie.Value)
		require.NoError(t, err)
		token, err := a.csrf.GenerateToken(id)
		require.NoError(t, err)
		form.Set(security.CSRFFormField, token)
	}
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if htmx {
		req.Header.Set(hxRequestHeader, "true")
	}
	return a.do(req, cookie)
}

func (a *testApp) do(req *http.Request, cookie *http.Cookie) *httptest.ResponseRecorder {
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func adminUser() models.User {
	return models.User{ID: "u-admin", Phone: "0911000001", Role: "admin", Member: &models.Member{ID: "m-admin", FullName: "Admin Person"}}
}

func familyLeader() models.User {
	family := "f1"
	return models.User{ID: "u-fl", Phone: "0911000002", Role: "fl", Member: &models.Member{ID: "m-fl", FullName: "Family Leader", FamilyID: &family}}
}

func TestGuardRedirects(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name   string
		user   *models.User
		path   string
		htmx   bool
		target string
	}{
		{name: "signed out goes to login", path: "/members", target: security.PathLogin},
		{name: "signed out root goes to login", path: "/", target: security.PathLogin},
		{name: "family leader on admin page", user: ptr(familyLeader()), path: "/members", target: "/families/my-family"},
		{name: "admin on family leader page", user: ptr(adminUser()), path: "/families/my-family", target: "/dashboard"},
		{name: "role without landing page", user: &models.User{ID: "u-tl", Role: "tl"}, path: "/", target: security.PathUnauthorized},
		{name: "admin root goes to dashboard", user: ptr(adminUser()), path: "/", target: "/dashboard"},
		{name: "unknown path", user: ptr(adminUser()), path: "/no/such/page", target: security.PathNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cookie *http.Cookie
			if tt.user != nil {
				cookie = app.signIn(t, *tt.user)
			}
			rec := app.get(tt.path, cookie, tt.htmx)
			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, tt.target, rec.Header().Get("Location"))
		})
	}
}

func TestGuardUsesHXRedirectForHTMX(t *testing.T) {
	app := newTestApp(t)

	rec := app.get("/members", nil, true)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, security.PathLogin, rec.Header().Get(hxRedirectHeader))
}

func TestLoginSuccessRedirectsToLanding(t *testing.T) {
	app := newTestApp(t)
	app.api.respond("Login", `{"login":{"token":"tok-1","user":{"id":"u1","phone":"0911000000","role":"fl"}}}`)

	anon := app.get("/auth/login", nil, false)
	require.Equal(t, http.StatusOK, anon.Code)
	cookie := findCookie(anon.Result().Cookies(), session.CookieName)
	require.NotNil(t, cookie)

	rec := app.post(t, "/auth/login", url.Values{"phone": {"0911000000"}, "password": {"secret"}}, cookie, false)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/families/my-family", rec.Header().Get("Location"))
	rotated := findCookie(rec.Result().Cookies(), session.CookieName)
	require.NotNil(t, rotated)
	assert.NotEqual(t, cookie.Value, rotated.Value)

	calls := app.api.callsTo("Login")
	require.Len(t, calls, 1)
	assert.Equal(t, "0911000000", calls[0].Vars["phone"])
}

func TestLoginValidationSkipsRequest(t *testing.T) {
	app := newTestApp(t)
	cookie := findCookie(app.get("/auth/login", nil, false).Result().Cookies(), session.CookieName)
	require.NotNil(t, cookie)

	rec := app.post(t, "/auth/login", url.Values{"phone": {"abc"}, "password": {"x"}}, cookie, false)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Enter a valid phone number")
	assert.Empty(t, app.api.callsTo("Login"))
}

func TestLoginServerErrorShowsMessage(t *testing.T) {
	app := newTestApp(t)
	app.api.fail("Login", "Invalid credentials")
	cookie := findCookie(app.get("/auth/login", nil, false).Result().Cookies(), session.CookieName)
	require.NotNil(t, cookie)

	rec := app.post(t, "/auth/login", url.Values{"phone": {"0911000000"}, "password": {"wrong"}}, cookie, false)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid credentials")
}

func TestLoginRetryAfterRejectedPassword(t *testing.T) {
	app := newTestApp(t)
	app.api.fail("Login", "Invalid credentials")
	cookie := findCookie(app.get("/auth/login", nil, false).Result().Cookies(), session.CookieName)
	require.NotNil(t, cookie)

	rejected := app.post(t, "/auth/login", url.Values{"phone": {"0911000000"}, "password": {"wrong"}}, cookie, false)
	require.Equal(t, http.StatusUnprocessableEntity, rejected.Code)
	assert.Nil(t, findCookie(rejected.Result().Cookies(), session.CookieName))

	match := regexp.MustCompile(`name="csrf_token" value="([^"]+)"`).FindStringSubmatch(rejected.Body.String())
	require.Len(t, match, 2)

	app.api.respond("Login", `{"login":{"token":"tok-1","user":{"id":"u1","phone":"0911000000","role":"admin"}}}`)
	form := url.Values{"phone": {"0911000000"}, "password": {"right"}, security.CSRFFormField: {match[1]}}
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := app.do(req, cookie)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
	assert.Len(t, app.api.callsTo("Login"), 2)
}

func TestPostWithoutCSRFTokenIsRejected(t *testing.T) {
	app := newTestApp(t)
	cookie := app.signIn(t, adminUser())

	req := httptest.NewRequest(http.MethodPost, "/members/m1/delete", strings.NewReader("confirm=yes"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := app.do(req, cookie)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, app.api.callsTo("DeleteMember"))
}

func TestMemberListSendsFiltersAndToken(t *testing.T) {
	app := newTestApp(t)
	app.api.respond("GetMembers", `{"members":{"items":[{"id":"m1","full_name":"Abel Kebede","phone":"0911"}],"total":21,"page":2,"limit":10,"totalPages":3}}`)
	cookie := app.signIn(t, adminUser())

	rec := app.get("/members?search=abe&status_id=s1&page=2", cookie, false)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Abel Kebede")
	assert.Contains(t, rec.Body.String(), "Page 2 of 3")

	calls := app.api.callsTo("GetMembers")
	require.Len(t, calls, 1)
	assert.Equal(t, "abe", calls[0].Vars["search"])
	assert.Equal(t, "s1", calls[0].Vars["status_id"])
	assert.Equal(t, float64(2), calls[0].Vars["page"])
	assert.Equal(t, "Bearer token-u-admin", calls[0].Auth)
}

func TestMemberListHTMXRendersFragment(t *testing.T) {
	app := newTestApp(t)
	cookie := app.signIn(t, adminUser())

	rec := app.get("/members?search=zzz", cookie, true)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `id="member-table"`)
	assert.NotContains(t, body, "<html")
}

func TestMemberListErrorOffersRetry(t *testing.T) {
	app := newTestApp(t)
	app.api.fail("GetMembers", "members service unavailable")
	cookie := app.signIn(t, adminUser())

	rec := app.get("/members?search=abe&status_id=s1", cookie, false)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "members service unavailable")
	assert.Contains(t, body, `hx-get="/members?page=1&amp;page_size=10&amp;search=abe&amp;status_id=s1"`)
	assert.Contains(t, body, ">Retry</a>")
	assert.NotContains(t, body, "No members found.")
	assert.NotContains(t, body, "<table>")
}

func TestMemberListEmptyOffersCreate(t *testing.T) {
	app := newTestApp(t)
	app.api.respond("GetMembers", `{"members":{"items":[],"total":0,"page":1,"limit":10,"totalPages":0}}`)
	cookie := app.signIn(t, adminUser())

	rec := app.get("/members", cookie, true)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "No members found.")
	assert.Contains(t, body, `href="/members/new">New member</a>`)
	assert.NotContains(t, body, ">Retry</a>")
}

func TestMemberCreateValidationRerendersForm(t *testing.T) {
	app := newTestApp(t)
	cookie := app.signIn(t, adminUser())

	rec := app.post(t, "/members", url.Values{"full_name": {"A"}, "phone": {"0911000000"}}, cookie, false)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Full name must be at least 2 characters")
	assert.Empty(t, app.api.callsTo("CreateMember"))
}

func TestMemberCreateRedirectsWithToast(t *testing.T) {
	app := newTestApp(t)
	app.api.respond("CreateMember", `{"createMember":{"id":"m9","full_name":"Selam Tesfaye","phone":"0911000000"}}`)
	app.api.respond("GetMember", `{"member":{"id":"m9","full_name":"Selam Tesfaye","phone":"0911000000"}}`)
	cookie := app.signIn(t, adminUser())

	rec := app.post(t, "/members", url.Values{"full_name": {"Selam Tesfaye"}, "phone": {"0911000000"}, "ministry_ids": {"min1", "min2"}}, cookie, false)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/members/m9", rec.Header().Get("Location"))

	calls := app.api.callsTo("CreateMember")
	require.Len(t, calls, 1)
	input := calls[0].Vars["input"].(map[string]any)
	assert.Equal(t, "Selam Tesfaye", input["full_name"])
	assert.Equal(t, []any{"min1", "min2"}, input["ministry_ids"])

	page := app.get("/members/m9", cookie, false)
	assert.Contains(t, page.Body.String(), "Member created")

	again := app.get("/members/m9", cookie, false)
	assert.NotContains(t, again.Body.String(), "Member created")
}

func TestPromoteMinistryLeaderRequiresMinistry(t *testing.T) {
	app := newTestApp(t)
	app.api.respond("GetMember", `{"member":{"id":"m1","full_name":"Abel Kebede","phone":"0911"}}`)
	cookie := app.signIn(t, adminUser())

	rec := app.post(t, "/members/m1/promote", url.Values{"role": {"ml"}}, cookie, false)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), service.ErrMinistryRequired.Error())
	assert.Empty(t, app.api.callsTo("PromoteMinistryLeader"))
	assert.Empty(t, app.api.callsTo("PromoteMember"))
}

func TestPromoteMinistryLeaderShowsPassword(t *testing.T) {
	app := newTestApp(t)
	app.api.respond("GetMember", `{"member":{"id":"m1","full_name":"Abel Kebede","phone":"0911"}}`)
	app.api.respond("PromoteMinistryLeader", `{"promoteMinistryLeader":{"password":"Xy7-one-time"}}`)
	cookie := app.signIn(t, adminUser())

	rec := app.post(t, "/members/m1/promote", url.Values{"role": {"ml"}, "ministry_id": {"min1"}}, cookie, false)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Xy7-one-time")
	calls := app.api.callsTo("PromoteMinistryLeader")
	require.Len(t, calls, 1)
	assert.Equal(t, "min1", calls[0].Vars["ministry_id"])
	assert.Empty(t, app.api.callsTo("PromoteMember"))
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	app := newTestApp(t)
	cookie := app.signIn(t, adminUser())

	rec := app.post(t, "/members/m1/delete", nil, cookie, false)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/members/m1", rec.Header().Get("Location"))
	assert.Empty(t, app.api.callsTo("DeleteMember"))

	app.api.respond("DeleteMember", `{"deleteMember":true}`)
	rec = app.post(t, "/members/m1/delete", url.Values{"confirm": {"yes"}}, cookie, false)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/members", rec.Header().Get("Location"))
	assert.Len(t, app.api.callsTo("DeleteMember"), 1)
}

func TestDeleteFailureShowsServerMessage(t *testing.T) {
	app := newTestApp(t)
	app.api.fail("DeleteFamily", "Family still has members")
	app.api.respond("GetFamily", `{"family":{"id":"f1","name":"Bethel"}}`)
	cookie := app.signIn(t, adminUser())

	rec := app.post(t, "/families/f1/delete", url.Values{"confirm": {"yes"}}, cookie, false)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/families/f1", rec.Header().Get("Location"))

	page := app.get("/families/f1", cookie, false)
	assert.Contains(t, page.Body.String(), "Family still has members")
}

func TestMeetupDeleteFailureReturnsToMeetup(t *testing.T) {
	app := newTestApp(t)
	app.api.respond("GetFamilyMeetup", `{"familyMeetup":{"id":"mt1","family_id":"f1","title":"Sunday","meetup_date":"2001-01-01T10:00:00Z"}}`)
	app.api.fail("DeleteFamilyMeetup", "Meetup has attendance")
	cookie := app.signIn(t, familyLeader())

	rec := app.post(t, "/families/my-family/meetups/mt1/delete", url.Values{"confirm": {"yes"}}, cookie, false)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/families/my-family/meetups/mt1/edit", rec.Header().Get("Location"))
	assert.Len(t, app.api.callsTo("DeleteFamilyMeetup"), 1)

	page := app.get("/families/my-family/meetups/mt1/edit", cookie, false)
	assert.Contains(t, page.Body.String(), "Meetup has attendance")

	app.api.respond("DeleteFamilyMeetup", `{"deleteFamilyMeetup":true}`)
	rec = app.post(t, "/families/my-family/meetups/mt1/delete", url.Values{"confirm": {"yes"}}, cookie, false)
	assert.Equal(t, "/families/my-family", rec.Header().Get("Location"))
}

func TestFamilyListPaginatesClientSide(t *testing.T) {
	app := newTestApp(t)
	var rows []string
	for i := 1; i <= 12; i++ {
		rows = append(rows, fmt.Sprintf(`{"id":"f%d","name":"Family %02d","member_count":%d}`, i, i, i))
	}
	app.api.respond("GetFamilySummaries", `{"familySummaries":[`+strings.Join(rows, ",")+`]}`)
	cookie := app.signIn(t, adminUser())

	rec := app.get("/families?page=2&page_size=10", cookie, false)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Family 11")
	assert.Contains(t, body, "Family 12")
	assert.NotContains(t, body, "Family 01")
	assert.Contains(t, body, "Page 2 of 2")
	assert.Len(t, app.api.callsTo("GetFamilySummaries"), 1)
}

func TestMyFamilySplitsMeetups(t *testing.T) {
	app := newTestApp(t)
	app.api.respond("GetFamily", `{"family":{"id":"f1","name":"Bethel","members":[{"id":"m1","full_name":"Abel"}]}}`)
	app.api.respond("GetFamilyMeetups", `{"familyMeetups":[
		{"id":"a","family_id":"f1","title":"Old gathering","meetup_date":"2001-01-01T10:00:00Z","attendances":[{"id":"x","member_id":"m1","present":true}]},
		{"id":"b","family_id":"f1","title":"Future gathering","meetup_date":"2999-01-01T10:00:00Z"}
	]}`)
	cookie := app.signIn(t, familyLeader())

	rec := app.get("/families/my-family", cookie, false)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	upcoming := strings.Index(body, "Upcoming meetups")
	past := strings.Index(body, "Past meetups")
	require.True(t, upcoming >= 0 && past > upcoming)
	assert.Contains(t, body[upcoming:past], "Future gathering")
	assert.Contains(t, body[past:], "Old gathering")
	assert.Contains(t, body, "100%")

	calls := app.api.callsTo("GetFamily")
	require.Len(t, calls, 1)
	assert.Equal(t, "f1", calls[0].Vars["id"])

	meetups := app.api.callsTo("GetFamilyMeetups")
	require.Len(t, meetups, 1)
	assert.Contains(t, meetups[0].Query, "attendances { id member_id present }")
}

func TestSaveAttendanceSubmitsOneRecordPerMember(t *testing.T) {
	app := newTestApp(t)
	app.api.respond("GetFamilyMeetup", `{"familyMeetup":{"id":"mt1","family_id":"f1","title":"Sunday","meetup_date":"2001-01-01T10:00:00Z"}}`)
	app.api.respond("CreateAttendances", `{"createAttendances":[]}`)
	cookie := app.signIn(t, familyLeader())

	form := url.Values{
		"member_id":  {"m1", "m2"},
		"present_m1": {"on"},
		"note_m2":    {"  sick "},
	}
	rec := app.post(t, "/families/my-family/meetups/mt1/attendance", form, cookie, false)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/families/my-family", rec.Header().Get("Location"))

	calls := app.api.callsTo("CreateAttendances")
	require.Len(t, calls, 1)
	assert.Equal(t, "mt1", calls[0].Vars["meetup_id"])
	records := calls[0].Vars["records"].([]any)
	require.Len(t, records, 2)
	first := records[0].(map[string]any)
	second := records[1].(map[string]any)
	assert.Equal(t, true, first["present"])
	assert.Equal(t, false, second["present"])
	assert.Equal(t, "sick", second["note"])
}

func TestMeetupOfAnotherFamilyIsNotFound(t *testing.T) {
	app := newTestApp(t)
	app.api.respond("GetFamilyMeetup", `{"familyMeetup":{"id":"mt1","family_id":"other","title":"Sunday","meetup_date":"2001-01-01"}}`)
	cookie := app.signIn(t, familyLeader())

	rec := app.get("/families/my-family/meetups/mt1/attendance", cookie, false)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, security.PathNotFound, rec.Header().Get("Location"))
}

func TestLookupListStates(t *testing.T) {
	app := newTestApp(t)
	cookie := app.signIn(t, adminUser())

	app.api.fail("GetLocations", "lookup failed")
	rec := app.get("/locations", cookie, false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "lookup failed")
	assert.Contains(t, rec.Body.String(), `hx-get="/locations?page=1&amp;page_size=10">Retry</a>`)

	app.api.respond("GetLocations", `{"locations":[]}`)
	rec = app.get("/locations", cookie, false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `href="#lookup-name">Add Location</a>`)
	assert.NotContains(t, rec.Body.String(), ">Retry</a>")
}

func TestLookupCreateRefetchesListForHTMX(t *testing.T) {
	app := newTestApp(t)
	app.api.respond("CreateProfession", `{"createProfession":{"id":"p1","name":"Teacher"}}`)
	app.api.respond("GetProfessions", `{"professions":[{"id":"p1","name":"Teacher"}]}`)
	cookie := app.signIn(t, adminUser())

	rec := app.post(t, "/professions", url.Values{"name": {"Teacher"}}, cookie, true)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `id="lookup-panel"`)
	assert.Contains(t, body, "Teacher")
	assert.Contains(t, body, "Profession created")
	assert.Len(t, app.api.callsTo("CreateProfession"), 1)
	assert.Len(t, app.api.callsTo("GetProfessions"), 1)
}

func TestLookupCreateValidationSkipsRequest(t *testing.T) {
	app := newTestApp(t)
	cookie := app.signIn(t, adminUser())

	rec := app.post(t, "/locations", url.Values{"name": {""}}, cookie, true)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Name is required")
	assert.Empty(t, app.api.callsTo("CreateLocation"))
}

func TestActivityUsesServerPagination(t *testing.T) {
	app := newTestApp(t)
	app.api.respond("GetActivities", `{"activities":{"items":[{"id":"a1","actor":"Admin","action":"create","entity_type":"member","created_at":"1700000000000"}],"total":31,"page":4,"limit":10,"totalPages":4}}`)
	cookie := app.signIn(t, adminUser())

	rec := app.get("/activity?page=4", cookie, false)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page 4 of 4")
	calls := app.api.callsTo("GetActivities")
	require.Len(t, calls, 1)
	assert.Equal(t, float64(4), calls[0].Vars["page"])
}

func TestLogoutClearsSession(t *testing.T) {
	app := newTestApp(t)
	cookie := app.signIn(t, adminUser())

	rec := app.post(t, "/auth/logout", nil, cookie, false)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, security.PathLogin, rec.Header().Get("Location"))
	assert.Len(t, app.api.callsTo("Logout"), 1)

	after := app.get("/dashboard", cookie, false)
	assert.Equal(t, security.PathLogin, after.Header().Get("Location"))
}

func findCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func ptr[T any](v T) *T {
	return &v
}
