package actions

import (
	"github.com/gobuffalo/buffalo"
	paramlogger "github.com/gobuffalo/mw-paramlogger"

	"github.com/gobuffalo/buffalo-pop/v3/pop/popmw"
	contenttype "github.com/gobuffalo/mw-contenttype"
	"github.com/gorilla/sessions"
	"github.com/rs/cors"

	"github.com/silinternational/prudence-api/domain"
	"github.com/silinternational/prudence-api/log"
	"github.com/silinternational/prudence-api/models"
)

var app *buffalo.App

// App is where all routes and middleware for buffalo should be defined.
// This is the nerve center of your application.
//
// Routing, middleware, groups, etc... are declared TOP -> DOWN.
// This means if you add a middleware to `app` *after* declaring a
// group, that group will NOT have that new middleware. The same
// is true of resource declarations as well.
//
// It also means that routes are checked in the order they are declared.
func App() *buffalo.App {
	if app == nil {
		app = buffalo.New(buffalo.Options{
			Env: domain.Env.GoEnv,
			PreWares: []buffalo.PreWare{
				cors.New(cors.Options{
					AllowCredentials: true,
					AllowedOrigins:   []string{domain.Env.UIURL},
					AllowedMethods:   []string{"HEAD", "GET", "POST", "PUT", "PATCH", "DELETE"},
					AllowedHeaders:   []string{"*"},
				}).Handler,
			},
			SessionName:  "_prudence_api_session",
			SessionStore: sessions.NewCookieStore([]byte(domain.Env.SessionSecret)),
		})

		// Report panics and errors to Sentry
		app.Use(log.SentryMiddleware)

		// Log request parameters (filters apply)
		app.Use(paramlogger.ParameterLogger)

		// Set the request content type to JSON
		app.Use(contenttype.Set("application/json"))

		// Wraps each request in a transaction
		app.Use(popmw.Transaction(models.DB))

		// Authenticate the bearer token on everything except the routes below
		app.Use(AuthN)

		app.GET("/", HomeHandler)
		app.GET("/status", statusHandler)
		app.Middleware.Skip(AuthN, HomeHandler, statusHandler)

		auth := app.Group("/auth")
		auth.POST("/register", authRegister)
		auth.POST("/login", authLogin)
		auth.POST("/logout", authLogout)
		auth.GET("/user", authUser)
		auth.Middleware.Skip(AuthN, authRegister, authLogin)

		risks := app.Group("/" + domain.TypeRisk)
		risks.Use(AuthZ)
		risks.GET("/", risksList)
		risks.POST("/", risksCreate)
		risks.GET("/mine", risksMine)
		risks.GET("/matrix", risksMatrix)
		risks.GET("/{id}", risksView)
		risks.PATCH("/{id}", risksUpdate)
		risks.DELETE("/{id}", risksDelete)

		controls := app.Group("/" + domain.TypeControl)
		controls.Use(AuthZ)
		controls.GET("/", controlsList)
		controls.POST("/", controlsCreate)
		controls.GET("/mine", controlsMine)
		controls.GET("/{id}", controlsView)
		controls.PATCH("/{id}", controlsUpdate)
		controls.DELETE("/{id}", controlsDelete)

		riskTypes := app.Group("/" + domain.TypeRiskType)
		riskTypes.Use(AuthZ)
		riskTypes.GET("/", riskTypesList)
		riskTypes.GET("/{id}", riskTypesView)

		users := app.Group("/" + domain.TypeUser)
		users.Use(AuthZ)
		users.GET("/", usersList)
		users.GET("/me", usersMe)
		users.GET("/{id}", usersView)

		assessments := app.Group("/" + domain.TypeRiskAssessment)
		assessments.Use(AuthZ)
		assessments.GET("/", assessmentsList)
		assessments.GET("/{id}", assessmentsView)
		assessments.PATCH("/{id}", assessmentsUpdate)

		dashboard := app.Group("/dashboard")
		dashboard.GET("/stats", dashboardStats)
	}

	return app
}
