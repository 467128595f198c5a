package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// sanitizeRedirectPath returns a safe local redirect path, defaulting to "/"
// to prevent open redirects.
func sanitizeRedirectPath(path string) string {
	if path == "" ||
		!strings.HasPrefix(path, "/") ||
		strings.HasPrefix(path, "//") ||
		strings.Contains(path, "://") ||
		strings.Contains(path, "\\") {
		return "/"
	}
	return path
}

// AuthController handles the login, register and logout endpoints.
type AuthController struct {
	service        *Service
	sessionManager *SessionManager
}

// NewAuthController creates a new authentication controller.
func NewAuthController(service *Service, sessionManager *SessionManager) *AuthController {
	return &AuthController{
		service:        service,
		sessionManager: sessionManager,
	}
}

// RegisterRoutes registers authentication routes on the router.
func (ac *AuthController) RegisterRoutes(router *gin.Engine) {
	router.GET("/login", ac.LoginPage)
	router.POST("/login", ac.Login)
	router.GET("/register", ac.RegisterPage)
	router.POST("/register", ac.Register)
	router.GET("/logout", ac.Logout)
	router.POST("/logout", ac.Logout)
}

// LoginPage renders the login form.
func (ac *AuthController) LoginPage(c *gin.Context) {
	if ac.sessionManager.IsAuthenticated(c.Request) {
		c.Redirect(http.StatusFound, sanitizeRedirectPath(c.Query("next")))
		return
	}

	c.HTML(http.StatusOK, "login.html", gin.H{
		"Title":     "Login",
		"Next":      sanitizeRedirectPath(c.Query("next")),
		"CSRFToken": GetCSRFToken(c),
		"Error":     c.Query("error"),
	})
}

// Login handles the login form submission.
func (ac *AuthController) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	next := sanitizeRedirectPath(c.PostForm("next"))

	user, err := ac.service.Authenticate(username, password)
	if err != nil {
		errorMsg := "Invalid password"
		if errors.Is(err, ErrUserNotFound) {
			errorMsg = "Invalid username"
		}
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{
			"Title":     "Login",
			"Next":      next,
			"Username":  username,
			"CSRFToken": GetCSRFToken(c),
			"Error":     errorMsg,
		})
		return
	}

	if err := ac.sessionManager.CreateSession(c.Request, user); err != nil {
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{
			"Title":     "Login",
			"CSRFToken": GetCSRFToken(c),
			"Error":     "Failed to create session",
		})
		return
	}

	c.Redirect(http.StatusFound, next)
}

// RegisterPage renders the registration form.
func (ac *AuthController) RegisterPage(c *gin.Context) {
	if ac.sessionManager.IsAuthenticated(c.Request) {
		c.Redirect(http.StatusFound, "/")
		return
	}

	c.HTML(http.StatusOK, "register.html", gin.H{
		"Title":     "Register",
		"CSRFToken": GetCSRFToken(c),
	})
}

// Register handles the registration form submission.
func (ac *AuthController) Register(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	password2 := c.PostForm("password2")

	renderError := func(msg string) {
		c.HTML(http.StatusBadRequest, "register.html", gin.H{
			"Title":     "Register",
			"Username":  username,
			"CSRFToken": GetCSRFToken(c),
			"Error":     msg,
		})
	}

	if username == "" {
		renderError("You have to enter a username")
		return
	}
	if password == "" {
		renderError("You have to enter a password")
		return
	}
	if password != password2 {
		renderError("The two passwords do not match")
		return
	}

	if _, err := ac.service.CreateUser(username, password); err != nil {
		switch {
		case errors.Is(err, ErrUserExists),
			errors.Is(err, ErrUsernameInvalid),
			errors.Is(err, ErrPasswordTooShort),
			errors.Is(err, ErrPasswordTooLong):
			renderError(err.Error())
		default:
			c.HTML(http.StatusInternalServerError, "register.html", gin.H{
				"Title":     "Register",
				"CSRFToken": GetCSRFToken(c),
				"Error":     "Registration failed",
			})
		}
		return
	}

	c.Redirect(http.StatusFound, "/login")
}

// Logout destroys the session and returns to the login page.
func (ac *AuthController) Logout(c *gin.Context) {
	_ = ac.sessionManager.DestroySession(c.Request)
	c.Redirect(http.StatusFound, "/login")
}
