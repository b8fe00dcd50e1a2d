package tests

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/kavya410004/cultivating-connections/internal/config"
	"github.com/kavya410004/cultivating-connections/internal/database"
	"github.com/kavya410004/cultivating-connections/internal/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupServer(t *testing.T) (*httptest.Server, *http.Client) {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Session: config.SessionConfig{Secret: "test-session-secret"},
		JWT:     config.JWTConfig{Secret: "test-jwt-secret"},
		Uploads: config.UploadConfig{Dir: t.TempDir()},
	}

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	router, err := server.NewRouter(cfg, db, "../web/templates/*")
	require.NoError(t, err)

	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return ts, &http.Client{Jar: jar}
}

func postForm(t *testing.T, client *http.Client, url string, form url.Values) (*http.Response, string) {
	resp, err := client.PostForm(url, form)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	return resp, string(body)
}

func getPage(t *testing.T, client *http.Client, url string) (*http.Response, string) {
	resp, err := client.Get(url)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	return resp, string(body)
}

func TestMarketplaceFlow(t *testing.T) {
	ts, farmerClient := setupServer(t)

	// Farmer registers and lists a crop.
	resp, _ := postForm(t, farmerClient, ts.URL+"/farmerRegister", url.Values{
		"name":             {"Kavya"},
		"phone":            {"9876543210"},
		"district":         {"Guntur"},
		"password":         {"secret"},
		"confirm_password": {"secret"},
	})
	assert.Equal(t, "/farmer-home", resp.Request.URL.Path)

	resp, body := postForm(t, farmerClient, ts.URL+"/add-crop", url.Values{
		"name":     {"Tomato"},
		"quantity": {"100"},
		"price":    {"20.50"},
	})
	assert.Equal(t, "/farmer-home", resp.Request.URL.Path)
	assert.Contains(t, body, "Tomato")
	assert.Contains(t, body, "100")

	// Buyer registers with their own session and requests 30 kg.
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	buyerClient := &http.Client{Jar: jar}

	resp, _ = postForm(t, buyerClient, ts.URL+"/buyerRegister", url.Values{
		"name":             {"Bhavana"},
		"phone":            {"9000000001"},
		"password":         {"secret"},
		"confirm_password": {"secret"},
	})
	assert.Equal(t, "/buyer-home", resp.Request.URL.Path)

	_, body = postForm(t, buyerClient, ts.URL+"/search", url.Values{"query": {"tom"}})
	assert.Contains(t, body, "Tomato")

	resp, body = postForm(t, buyerClient, ts.URL+"/send-request/1", url.Values{"quantity": {"30"}})
	assert.Equal(t, "/buyer-requests", resp.Request.URL.Path)
	assert.Contains(t, body, "Pending")

	// A buyer session cannot see farmer pages; it lands on the login page.
	resp, _ = getPage(t, buyerClient, ts.URL+"/farmer-home")
	assert.Equal(t, "/login", resp.Request.URL.Path)

	// Farmer accepts; inventory drops to 70 and the sale shows up.
	resp, body = getPage(t, farmerClient, ts.URL+"/accept/1")
	assert.Equal(t, "/farmer-home", resp.Request.URL.Path)
	assert.Contains(t, body, "70")

	_, body = getPage(t, farmerClient, ts.URL+"/sold-crops")
	assert.Contains(t, body, "Tomato")
	assert.Contains(t, body, "Bhavana")
	assert.Contains(t, body, "30")

	// Buyer sees the accepted request and can fetch the seller's contact.
	_, body = getPage(t, buyerClient, ts.URL+"/buyer-requests")
	assert.Contains(t, body, "Accepted")

	_, body = getPage(t, buyerClient, ts.URL+"/connect/1")
	assert.Contains(t, body, "Kavya")
	assert.Contains(t, body, "9876543210")
}

func TestAnonymousRedirects(t *testing.T) {
	ts, client := setupServer(t)

	for _, path := range []string{"/farmer-home", "/sold-crops", "/buyer-requests", "/settings"} {
		resp, _ := getPage(t, client, ts.URL+path)
		assert.Equal(t, "/login", resp.Request.URL.Path, "expected %s to redirect to login", path)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}
}

func TestPublicHomeAndSearch(t *testing.T) {
	ts, client := setupServer(t)

	resp, body := getPage(t, client, ts.URL+"/buyer-home")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Marketplace")

	_, body = postForm(t, client, ts.URL+"/search", url.Values{"query": {"anything"}})
	assert.Contains(t, body, "No crops available")
}

func TestLoginFailureStaysOnLoginPage(t *testing.T) {
	ts, client := setupServer(t)

	postForm(t, client, ts.URL+"/farmerRegister", url.Values{
		"name":             {"Kavya"},
		"phone":            {"9876543210"},
		"district":         {"Guntur"},
		"password":         {"secret"},
		"confirm_password": {"secret"},
	})
	getPage(t, client, ts.URL+"/logout")

	_, body := postForm(t, client, ts.URL+"/login", url.Values{
		"role":     {"farmer"},
		"phone":    {"9876543210"},
		"password": {"wrong"},
	})
	assert.Contains(t, body, "Invalid phone number or password")

	resp, _ := postForm(t, client, ts.URL+"/login", url.Values{
		"role":     {"farmer"},
		"phone":    {"9876543210"},
		"password": {"secret"},
	})
	assert.Equal(t, "/farmer-home", resp.Request.URL.Path)
}

func TestAPITokenFlow(t *testing.T) {
	ts, client := setupServer(t)

	postForm(t, client, ts.URL+"/farmerRegister", url.Values{
		"name":             {"Kavya"},
		"phone":            {"9876543210"},
		"district":         {"Guntur"},
		"password":         {"secret"},
		"confirm_password": {"secret"},
	})
	postForm(t, client, ts.URL+"/add-crop", url.Values{
		"name":     {"Tomato"},
		"quantity": {"100"},
		"price":    {"20.50"},
	})

	// Mint a token with the browser session.
	req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/v1/tokens", strings.NewReader(`{"expires_in":"1h","label":"stock system"}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := client.Do(req)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	token := extractJSONField(t, string(body), "token")

	// The bearer token works without any session cookie.
	plainClient := &http.Client{}
	req, err = http.NewRequest(http.MethodGet, ts.URL+"/api/v1/crops", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = plainClient.Do(req)
	require.NoError(t, err)
	body2, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body2), "Tomato")

	// No token, no API.
	req, err = http.NewRequest(http.MethodGet, ts.URL+"/api/v1/crops", nil)
	require.NoError(t, err)
	resp, err = plainClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func extractJSONField(t *testing.T, body, field string) string {
	marker := `"` + field + `":"`
	idx := strings.Index(body, marker)
	require.GreaterOrEqual(t, idx, 0, "field %q not in %s", field, body)
	rest := body[idx+len(marker):]
	end := strings.Index(rest, `"`)
	require.GreaterOrEqual(t, end, 0)
	return rest[:end]
}
