package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/daniel-minto/minto-portfolio-api/config"
	"github.com/daniel-minto/minto-portfolio-api/controllers"
	"github.com/daniel-minto/minto-portfolio-api/middleware"
	"github.com/daniel-minto/minto-portfolio-api/models"
	"github.com/daniel-minto/minto-portfolio-api/services"
	"github.com/daniel-minto/minto-portfolio-api/tests/testutil"
	"github.com/daniel-minto/minto-portfolio-api/wizard"
)

// OrderFlowIntegrationTestSuite drives the API through the real router
// wiring: real session tokens, real middleware, in-memory database.
type OrderFlowIntegrationTestSuite struct {
	suite.Suite
	router *gin.Engine
	db     *gorm.DB
	cfg    *config.Config

	userToken  string
	adminToken string
}

func (suite *OrderFlowIntegrationTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	os.Setenv("GO_ENV", "test")
	testutil.RequireTestEnvironment(suite.T())

	suite.cfg = &config.Config{
		Port:          "8080",
		GoEnv:         "test",
		JWTSecret:     "integration-test-secret",
		AdminPassword: "admin-registration-secret",
		AdminEmail:    "admin@example.com",
	}
	config.SetConfig(suite.cfg)
}

func (suite *OrderFlowIntegrationTestSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.NoError(err)
	suite.db = db

	err = db.AutoMigrate(&models.User{}, &models.Order{}, &models.Review{})
	suite.NoError(err)
	config.SetDB(db)

	services.SetEmailService(services.NewMockEmailService())
	services.SetImageService(services.NewMockImageService())
	controllers.SetIntakeStore(wizard.NewStore())

	suite.router = suite.buildRouter()
	suite.userToken = suite.registerAndLogin("client@example.com", "")
	suite.adminToken = suite.registerAndLogin("admin@example.com", "admin-registration-secret")
}

func (suite *OrderFlowIntegrationTestSuite) TearDownTest() {
	services.SetEmailService(nil)
	services.SetImageService(nil)

	sqlDB, err := suite.db.DB()
	if err == nil {
		sqlDB.Close()
	}
}

// buildRouter mirrors the production route table
func (suite *OrderFlowIntegrationTestSuite) buildRouter() *gin.Engine {
	router := gin.New()

	v1 := router.Group("/api/v1")
	{
		v1.POST("/auth/register", controllers.Register)
		v1.POST("/auth/login", controllers.Login)
		v1.GET("/reviews", controllers.ListReviews)

		auth := v1.Group("")
		auth.Use(middleware.RequireAuth(suite.cfg))
		{
			auth.POST("/orders", controllers.CreateOrder)
			auth.GET("/orders", controllers.ListOrders)
			auth.GET("/orders/:id", controllers.GetOrder)
			auth.POST("/orders/:id/sign", controllers.SignOrder)
			auth.GET("/orders/:id/proposal", controllers.GetProposal)

			auth.POST("/intake", controllers.StartIntake)
			auth.PUT("/intake/:token", controllers.UpdateIntake)
			auth.POST("/intake/:token/advance", controllers.AdvanceIntake)
			auth.POST("/intake/:token/submit", controllers.SubmitIntake)

			auth.POST("/reviews", controllers.CreateReview)
		}

		admin := v1.Group("")
		admin.Use(middleware.RequireAuth(suite.cfg), middleware.RequireAdmin())
		{
			admin.PUT("/orders/:id/status", controllers.UpdateOrderStatus)
			admin.GET("/admin/dashboard", controllers.GetDashboardStats)
		}
	}

	return router
}

// registerAndLogin creates an account through the API and returns its
// session token. A non-empty adminPassword registers an admin.
func (suite *OrderFlowIntegrationTestSuite) registerAndLogin(email, adminPassword string) string {
	registerBody := map[string]interface{}{
		"email":            email,
		"password":         "password123",
		"confirm_password": "password123",
		"full_name":        "Integration User",
	}
	if adminPassword != "" {
		registerBody["role"] = "ADMIN"
		registerBody["admin_password"] = adminPassword
	}

	w := suite.request(http.MethodPost, "/api/v1/auth/register", registerBody, "")
	suite.Equal(http.StatusCreated, w.Code, "register failed: %s", w.Body.String())

	w = suite.request(http.MethodPost, "/api/v1/auth/login", map[string]interface{}{
		"email":    email,
		"password": "password123",
	}, "")
	suite.Equal(http.StatusOK, w.Code, "login failed: %s", w.Body.String())

	var response map[string]interface{}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	return data["token"].(string)
}

func (suite *OrderFlowIntegrationTestSuite) request(method, path string, body map[string]interface{}, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		suite.NoError(err)
		buf.Write(raw)
	}

	req, err := http.NewRequest(method, path, &buf)
	suite.NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *OrderFlowIntegrationTestSuite) parseData(w *httptest.ResponseRecorder) map[string]interface{} {
	var response map[string]interface{}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	return response["data"].(map[string]interface{})
}

func (suite *OrderFlowIntegrationTestSuite) TestFullOrderLifecycle() {
	// Client creates an order directly
	w := suite.request(http.MethodPost, "/api/v1/orders", map[string]interface{}{
		"client_name":    "Integration User",
		"client_email":   "client@example.com",
		"client_phone":   "876-555-0100",
		"package_type":   "Professional",
		"currency":       "JMD",
		"payment_method": "Bank Transfer",
	}, suite.userToken)
	suite.Equal(http.StatusCreated, w.Code, w.Body.String())

	order := suite.parseData(w)
	suite.Equal("150000", order["total_amount"])
	orderNumber := order["order_number"].(string)

	// The client can render the proposal
	w = suite.request(http.MethodGet, fmt.Sprintf("/api/v1/orders/%s/proposal", orderNumber), nil, suite.userToken)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("application/pdf", w.Header().Get("Content-Type"))

	// The client signs it
	w = suite.request(http.MethodPost, fmt.Sprintf("/api/v1/orders/%s/sign", orderNumber), map[string]interface{}{
		"strokes": [][]map[string]float64{
			{{"x": 10, "y": 20}, {"x": 80, "y": 55}},
		},
	}, suite.userToken)
	suite.Equal(http.StatusOK, w.Code, w.Body.String())

	// Admin walks the status forward
	w = suite.request(http.MethodPut, fmt.Sprintf("/api/v1/orders/%s/status", orderNumber), map[string]interface{}{
		"status": "In Progress",
	}, suite.adminToken)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.request(http.MethodPut, fmt.Sprintf("/api/v1/orders/%s/status", orderNumber), map[string]interface{}{
		"status": "Completed",
	}, suite.adminToken)
	suite.Equal(http.StatusOK, w.Code)

	// The client can now review the completed order
	var saved models.Order
	suite.NoError(suite.db.Where("order_number = ?", orderNumber).First(&saved).Error)
	suite.True(saved.ProposalSigned)

	w = suite.request(http.MethodPost, "/api/v1/reviews", map[string]interface{}{
		"order_id": saved.ID,
		"rating":   5,
		"comment":  "Excellent work",
	}, suite.userToken)
	suite.Equal(http.StatusCreated, w.Code, w.Body.String())

	// The review shows up publicly, attributed by name
	w = suite.request(http.MethodGet, "/api/v1/reviews", nil, "")
	suite.Equal(http.StatusOK, w.Code)

	var listResponse map[string]interface{}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &listResponse))
	reviews := listResponse["data"].([]interface{})
	suite.Len(reviews, 1)

	review := reviews[0].(map[string]interface{})
	author := review["user"].(map[string]interface{})
	suite.Equal("Integration User", author["full_name"])

	// The dashboard reflects the completed order and its review
	w = suite.request(http.MethodGet, "/api/v1/admin/dashboard", nil, suite.adminToken)
	suite.Equal(http.StatusOK, w.Code)

	stats := suite.parseData(w)
	suite.Equal(float64(1), stats["total_orders"])
	suite.Equal(float64(1), stats["completed"])
	suite.Equal(float64(1), stats["total_reviews"])
	suite.Equal(float64(5), stats["average_rating"])
}

func (suite *OrderFlowIntegrationTestSuite) TestIntakeWizardLifecycle() {
	// Start the wizard
	w := suite.request(http.MethodPost, "/api/v1/intake", nil, suite.userToken)
	suite.Equal(http.StatusCreated, w.Code, w.Body.String())

	data := suite.parseData(w)
	token := data["token"].(string)

	// Step 1 needs the project details before it advances
	w = suite.request(http.MethodPost, "/api/v1/intake/"+token+"/advance", nil, suite.userToken)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.request(http.MethodPut, "/api/v1/intake/"+token, map[string]interface{}{
		"website_type": "Business",
		"num_pages":    "5-10",
		"description":  "Company site",
	}, suite.userToken)
	suite.Equal(http.StatusOK, w.Code)

	// Steps 1 through 3
	for step := 0; step < 3; step++ {
		if step == 1 {
			w = suite.request(http.MethodPut, "/api/v1/intake/"+token, map[string]interface{}{
				"client_phone": "876-555-0100",
			}, suite.userToken)
			suite.Equal(http.StatusOK, w.Code)
		}
		w = suite.request(http.MethodPost, "/api/v1/intake/"+token+"/advance", nil, suite.userToken)
		suite.Equal(http.StatusOK, w.Code, w.Body.String())
	}

	// Submit from step 4 creates the order with the default package
	w = suite.request(http.MethodPost, "/api/v1/intake/"+token+"/submit", nil, suite.userToken)
	suite.Equal(http.StatusCreated, w.Code, w.Body.String())

	order := suite.parseData(w)
	suite.Equal("100000", order["total_amount"])
	suite.Equal("Bank Transfer", order["payment_method"])
}

func (suite *OrderFlowIntegrationTestSuite) TestCrossUserAccessDenied() {
	// client's order
	w := suite.request(http.MethodPost, "/api/v1/orders", map[string]interface{}{
		"client_name":    "Integration User",
		"client_email":   "client@example.com",
		"client_phone":   "876-555-0100",
		"package_type":   "Basic",
		"currency":       "JMD",
		"payment_method": "Cash",
	}, suite.userToken)
	suite.Equal(http.StatusCreated, w.Code)
	orderNumber := suite.parseData(w)["order_number"].(string)

	// A second client cannot read or sign it
	otherToken := suite.registerAndLogin("stranger@example.com", "")

	w = suite.request(http.MethodGet, "/api/v1/orders/"+orderNumber, nil, otherToken)
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.request(http.MethodPost, "/api/v1/orders/"+orderNumber+"/sign", map[string]interface{}{
		"signature_data": "data:image/png;base64,iVBORw0KGgo=",
	}, otherToken)
	suite.Equal(http.StatusForbidden, w.Code)

	// And a plain user cannot change its status
	w = suite.request(http.MethodPut, "/api/v1/orders/"+orderNumber+"/status", map[string]interface{}{
		"status": "Completed",
	}, suite.userToken)
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *OrderFlowIntegrationTestSuite) TestUnauthenticatedRequestsRejected() {
	w := suite.request(http.MethodGet, "/api/v1/orders", nil, "")
	suite.Equal(http.StatusUnauthorized, w.Code)

	w = suite.request(http.MethodGet, "/api/v1/orders", nil, "not-a-real-token")
	suite.Equal(http.StatusUnauthorized, w.Code)

	// Public review listing still works
	w = suite.request(http.MethodGet, "/api/v1/reviews", nil, "")
	suite.Equal(http.StatusOK, w.Code)
}

func TestOrderFlowIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderFlowIntegrationTestSuite))
}
