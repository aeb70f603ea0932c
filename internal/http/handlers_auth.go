package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	domainauth "github.com/learnix/learnix-portal/internal/domain/auth"
	"github.com/learnix/learnix-portal/internal/ports"
)

// AuthServiceInterface defines the auth service operations the handlers use.
type AuthServiceInterface interface {
	Login(ctx context.Context, email, password string) (domainauth.Session, error)
	LoginWithGoogle(ctx context.Context, idToken string) (domainauth.Session, error)
	GetSession(ctx context.Context, sessionID string) domainauth.Session
	Logout(ctx context.Context, sessionID string) error
	Register(ctx context.Context, in ports.RegisterInput) error
	ForgotPassword(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, otp string) error
	ResetPassword(ctx context.Context, in ports.ResetPasswordInput) error
}

// AuthHandlers provides HTTP handlers for authentication operations.
type AuthHandlers struct {
	Svc          AuthServiceInterface
	Google       ports.GoogleExchanger
	T            *TemplateRenderer
	CookieDomain string
	// GoogleRedirectURL is the absolute callback URL registered with the
	// provider.
	GoogleRedirectURL string
	Logger            *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

func loginMeta() PageMeta {
	return PageMeta{Title: "Sign in - Learnix", PageTitle: "Sign in", CurrentPage: PageLogin}
}

// LoginPage renders the login form. A visitor who already holds a session is
// sent straight to their role's dashboard.
// GET /.
func (h *AuthHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	if session := sessionFromRequest(r, h.Svc); !session.IsAnonymous() {
		http.Redirect(w, r, dashboardPathFor(session.Identity.Role), http.StatusSeeOther)
		return
	}
	h.renderAuthPage(w, r, loginMeta(), map[string]any{
		"Redirect": safeRedirectPath(r.URL.Query().Get("redirect")),
	})
}

// Login handles the login form submission.
// POST /auth/login.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderAuthPage(w, r, loginMeta(), map[string]any{"Error": "Invalid form submission."})
		return
	}
	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")

	session, err := h.Svc.Login(r.Context(), email, password)
	if err != nil {
		h.logger().InfoContext(r.Context(), "login rejected", "email", email, "error", err)
		h.renderAuthPage(w, r, loginMeta(), map[string]any{
			"Error":    "Sign in failed. Check your email and password.",
			"Email":    email,
			"Redirect": safeRedirectPath(r.PostFormValue("redirect")),
		})
		return
	}

	h.setSessionCookie(w, r, session)
	target := safeRedirectPath(r.PostFormValue("redirect"))
	if target == "/" {
		target = dashboardPathFor(session.Identity.Role)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func registerMeta() PageMeta {
	return PageMeta{Title: "Register - Learnix", PageTitle: "Create account", CurrentPage: PageRegister}
}

// RegisterPage renders the registration form.
// GET /register.
func (h *AuthHandlers) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.renderAuthPage(w, r, registerMeta(), nil)
}

// Register handles the registration form submission. New students stay
// pending until an admin approves the admission, so no session is created.
// POST /register.
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderAuthPage(w, r, registerMeta(), map[string]any{"Error": "Invalid form submission."})
		return
	}

	in := ports.RegisterInput{
		Name:     strings.TrimSpace(r.PostFormValue("name")),
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
		Role:     domainauth.RoleStudent,
	}
	if role := r.PostFormValue("role"); role != "" {
		parsed, err := domainauth.ParseRole(role)
		if err != nil {
			h.renderAuthPage(w, r, registerMeta(), map[string]any{"Error": "Unknown role."})
			return
		}
		in.Role = parsed
	}

	if err := h.Svc.Register(r.Context(), in); err != nil {
		h.logger().InfoContext(r.Context(), "registration rejected", "email", in.Email, "error", err)
		h.renderAuthPage(w, r, registerMeta(), map[string]any{
			"Error": "Registration failed. The email may already be in use.",
			"Name":  in.Name,
			"Email": in.Email,
		})
		return
	}

	h.renderAuthPage(w, r, loginMeta(), map[string]any{
		"Notice": "Account created. You can sign in once your admission is approved.",
	})
}

func forgotPasswordMeta() PageMeta {
	return PageMeta{Title: "Forgot password - Learnix", PageTitle: "Forgot password", CurrentPage: PageForgotPassword}
}

// ForgotPasswordPage renders the forgot-password form.
// GET /forgot-password.
func (h *AuthHandlers) ForgotPasswordPage(w http.ResponseWriter, r *http.Request) {
	h.renderAuthPage(w, r, forgotPasswordMeta(), nil)
}

// ForgotPassword asks the backend to mail a one-time code and moves the
// visitor on to the reset form.
// POST /forgot-password.
func (h *AuthHandlers) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderAuthPage(w, r, forgotPasswordMeta(), map[string]any{"Error": "Invalid form submission."})
		return
	}
	email := strings.TrimSpace(r.PostFormValue("email"))

	if err := h.Svc.ForgotPassword(r.Context(), email); err != nil {
		h.logger().InfoContext(r.Context(), "forgot password rejected", "email", email, "error", err)
		h.renderAuthPage(w, r, forgotPasswordMeta(), map[string]any{
			"Error": "Could not start a reset for that address.",
			"Email": email,
		})
		return
	}

	h.renderAuthPage(w, r, resetPasswordMeta(), map[string]any{
		"Email":  email,
		"Notice": "Check your inbox for the one-time code.",
	})
}

func resetPasswordMeta() PageMeta {
	return PageMeta{Title: "Reset password - Learnix", PageTitle: "Reset password", CurrentPage: PageResetPassword}
}

// ResetPasswordPage renders the reset form.
// GET /reset-password.
func (h *AuthHandlers) ResetPasswordPage(w http.ResponseWriter, r *http.Request) {
	h.renderAuthPage(w, r, resetPasswordMeta(), map[string]any{
		"Email": r.URL.Query().Get("email"),
	})
}

// ResetPassword verifies the one-time code and sets the new password.
// POST /reset-password.
func (h *AuthHandlers) ResetPassword(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderAuthPage(w, r, resetPasswordMeta(), map[string]any{"Error": "Invalid form submission."})
		return
	}

	in := ports.ResetPasswordInput{
		Email:       strings.TrimSpace(r.PostFormValue("email")),
		OTP:         strings.TrimSpace(r.PostFormValue("otp")),
		NewPassword: r.PostFormValue("new_password"),
	}

	if err := h.Svc.VerifyOTP(r.Context(), in.Email, in.OTP); err != nil {
		h.renderAuthPage(w, r, resetPasswordMeta(), map[string]any{
			"Error": "That code is not valid.",
			"Email": in.Email,
		})
		return
	}
	if err := h.Svc.ResetPassword(r.Context(), in); err != nil {
		h.logger().InfoContext(r.Context(), "password reset rejected", "email", in.Email, "error", err)
		h.renderAuthPage(w, r, resetPasswordMeta(), map[string]any{
			"Error": "Could not reset the password.",
			"Email": in.Email,
		})
		return
	}

	h.renderAuthPage(w, r, loginMeta(), map[string]any{
		"Notice": "Password updated. Sign in with your new password.",
		"Email":  in.Email,
	})
}

// GoogleBegin starts the Google sign-in code flow.
// GET /auth/google.
func (h *AuthHandlers) GoogleBegin(w http.ResponseWriter, r *http.Request) {
	if h.Google == nil {
		h.renderAuthPage(w, r, loginMeta(), map[string]any{"Error": "Google sign-in is not configured."})
		return
	}

	authURL, state, err := h.Google.Begin(r.Context(), h.GoogleRedirectURL)
	if err != nil {
		h.logger().ErrorContext(r.Context(), "google begin failed", "error", err)
		h.renderAuthPage(w, r, loginMeta(), map[string]any{"Error": "Google sign-in is unavailable right now."})
		return
	}

	setCookie(w, r, &http.Cookie{
		Name:   oauthStateCookieName,
		Value:  state,
		MaxAge: oauthCookieMaxAge,
	}, h.CookieDomain)
	http.Redirect(w, r, authURL, http.StatusFound)
}

// GoogleCallback completes the Google sign-in code flow: the verified ID
// token is forwarded to the backend, which decides whether the Google
// account maps onto a portal account.
// GET /auth/google/callback.
func (h *AuthHandlers) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	if h.Google == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	code := r.URL.Query().Get("code")
	state := r.URL.Query().Get("state")
	stateCookie, err := r.Cookie(oauthStateCookieName)
	if code == "" || state == "" || err != nil || stateCookie.Value != state {
		clearCookie(w, r, oauthStateCookieName, h.CookieDomain)
		h.renderAuthPage(w, r, loginMeta(), map[string]any{"Error": "Google sign-in was cancelled or invalid."})
		return
	}
	clearCookie(w, r, oauthStateCookieName, h.CookieDomain)

	idToken, err := h.Google.Exchange(r.Context(), code)
	if err != nil {
		h.logger().WarnContext(r.Context(), "google exchange failed", "error", err)
		h.renderAuthPage(w, r, loginMeta(), map[string]any{"Error": "Google sign-in failed."})
		return
	}

	session, err := h.Svc.LoginWithGoogle(r.Context(), idToken)
	if err != nil {
		h.logger().InfoContext(r.Context(), "google login rejected", "error", err)
		h.renderAuthPage(w, r, loginMeta(), map[string]any{
			"Error": "No Learnix account matches that Google account.",
		})
		return
	}

	h.setSessionCookie(w, r, session)
	http.Redirect(w, r, dashboardPathFor(session.Identity.Role), http.StatusSeeOther)
}

// Logout clears the server-side session and the cookie, then returns to the
// login page. Logging out twice is harmless.
// POST /auth/logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		if logoutErr := h.Svc.Logout(r.Context(), cookie.Value); logoutErr != nil {
			h.logger().WarnContext(r.Context(), "logout failed", "error", logoutErr)
		}
	}
	clearCookie(w, r, SessionCookieName, h.CookieDomain)

	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		WriteJSON(w, http.StatusOK, map[string]string{"status": "signed_out"})
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Status returns the current authentication status as JSON.
// GET /auth/status.
func (h *AuthHandlers) Status(w http.ResponseWriter, r *http.Request) {
	session := sessionFromRequest(r, h.Svc)
	if session.IsAnonymous() {
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"user": map[string]any{
			"id":    session.Identity.ID,
			"name":  session.Identity.Name,
			"email": session.Identity.Email,
			"role":  session.Identity.Role,
		},
		"expires_at": session.ExpiresAt,
	})
}

// renderAuthPage renders a public page with extra template data merged in.
func (h *AuthHandlers) renderAuthPage(w http.ResponseWriter, r *http.Request, meta PageMeta, extra map[string]any) {
	data := basePageData(r, meta)
	// Form fields echo back on validation errors; seed them so templates
	// never render a missing key.
	data["Email"] = ""
	data["Name"] = ""
	data["Redirect"] = "/"
	for k, v := range extra {
		data[k] = v
	}
	if err := h.T.RenderFull(w, r, data); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// dashboardPathFor maps a role onto its landing page.
func dashboardPathFor(role domainauth.Role) string {
	switch role {
	case domainauth.RoleTeacher:
		return "/teacher/dashboard"
	case domainauth.RoleAdmin:
		return "/admin/dashboard"
	default:
		return "/student/dashboard"
	}
}

// setSessionCookie writes the session cookie based on the session's expiry.
func (h *AuthHandlers) setSessionCookie(w http.ResponseWriter, r *http.Request, s domainauth.Session) {
	setCookie(w, r, &http.Cookie{
		Name:   SessionCookieName,
		Value:  s.ID,
		MaxAge: int(time.Until(s.ExpiresAt).Seconds()),
	}, h.CookieDomain)
}

// setCookie applies the shared cookie attributes before writing.
func setCookie(w http.ResponseWriter, r *http.Request, c *http.Cookie, domain string) {
	c.Path = "/"
	c.Domain = domain
	c.HttpOnly = true
	c.Secure = isSecureRequest(r)
	c.SameSite = http.SameSiteLaxMode
	http.SetCookie(w, c)
}

// clearCookie clears a cookie by setting it to expire immediately. It
// mirrors the attributes used when setting cookies to maximize browser
// compatibility during deletion.
func clearCookie(w http.ResponseWriter, r *http.Request, name, domain string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   domain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}

func isSecureRequest(r *http.Request) bool {
	return r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}

// safeRedirectPath ensures the provided redirect is a same-origin relative
// path starting with "/". Returns "/" when invalid.
func safeRedirectPath(candidate string) string {
	if candidate == "" {
		return "/"
	}
	u, err := url.Parse(candidate)
	if err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(u.Path, "/") {
		return "/"
	}
	return candidate
}
