package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/davidsantoszx/gerenciadorsalario/internal/auth"
	"github.com/davidsantoszx/gerenciadorsalario/internal/middleware"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves the login/cadastro pages and their form posts.
type AuthHandler struct {
	Service    *auth.Service
	CookieName string
}

func NewAuthHandler(svc *auth.Service, cookieName string) *AuthHandler {
	return &AuthHandler{Service: svc, CookieName: cookieName}
}

func (h *AuthHandler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", flashData(c, nil))
}

func (h *AuthHandler) Login(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	senha := c.PostForm("senha")

	if email == "" || senha == "" {
		c.HTML(http.StatusOK, "login.html", gin.H{
			"Flash":          "Preencha todos os campos!",
			"FlashCategoria": "warning",
		})
		return
	}

	user, err := h.Service.Authenticate(email, senha)
	if err != nil {
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			slog.Error("authenticate", "error", err)
		}
		c.HTML(http.StatusOK, "login.html", gin.H{
			"Flash":          "E-mail ou senha inválidos.",
			"FlashCategoria": "danger",
		})
		return
	}

	token, err := h.Service.Open(user.ID)
	if err != nil {
		slog.Error("open session", "error", err, "user_id", user.ID)
		c.HTML(http.StatusOK, "login.html", gin.H{
			"Flash":          "Não foi possível iniciar a sessão. Tente novamente.",
			"FlashCategoria": "danger",
		})
		return
	}

	maxAge := int(h.Service.TTL().Seconds())
	c.SetCookie(h.CookieName, token, maxAge, "/", "", false, true)
	setFlash(c, "success", "Login realizado com sucesso!")
	c.Redirect(http.StatusFound, "/")
}

// Logout revokes the session and clears the cookie. Registered behind
// RequireAuth, so an anonymous hit redirects to /login before reaching
// here.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(h.CookieName); err == nil && token != "" {
		if err := h.Service.Close(token); err != nil {
			slog.Error("close session", "error", err)
		}
	}
	c.SetCookie(h.CookieName, "", -1, "/", "", false, true)
	setFlash(c, "success", "Logout realizado com sucesso!")
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) CadastroPage(c *gin.Context) {
	c.HTML(http.StatusOK, "cadastro.html", flashData(c, nil))
}

func (h *AuthHandler) Cadastro(c *gin.Context) {
	nome := strings.TrimSpace(c.PostForm("nome"))
	email := strings.TrimSpace(c.PostForm("email"))
	senha := c.PostForm("senha")

	if nome == "" || email == "" || senha == "" {
		c.HTML(http.StatusOK, "cadastro.html", gin.H{
			"Flash":          "Preencha todos os campos!",
			"FlashCategoria": "warning",
		})
		return
	}

	if !auth.ValidPassword(senha) {
		c.HTML(http.StatusOK, "cadastro.html", gin.H{
			"Flash":          "A senha deve conter pelo menos 6 caracteres, uma letra maiúscula, um número e um caractere especial.",
			"FlashCategoria": "warning",
		})
		return
	}

	_, err := h.Service.Register(nome, email, senha)
	if err != nil {
		if errors.Is(err, auth.ErrDuplicateEmail) {
			c.HTML(http.StatusOK, "cadastro.html", gin.H{
				"Flash":          "Este e-mail já está cadastrado.",
				"FlashCategoria": "warning",
			})
			return
		}
		slog.Error("register", "error", err)
		c.HTML(http.StatusOK, "cadastro.html", gin.H{
			"Flash":          "Não foi possível concluir o cadastro. Tente novamente.",
			"FlashCategoria": "danger",
		})
		return
	}

	setFlash(c, "success", "Cadastro realizado com sucesso! Faça login.")
	c.Redirect(http.StatusFound, "/login")
}

// PageHandler serves pages that work with or without a session.
type PageHandler struct {
	Service    *auth.Service
	CookieName string
}

func NewPageHandler(svc *auth.Service, cookieName string) *PageHandler {
	return &PageHandler{Service: svc, CookieName: cookieName}
}

// Home renders the homepage. The identity is resolved opportunistically
// so the page can greet a logged-in user without requiring auth.
func (h *PageHandler) Home(c *gin.Context) {
	data := gin.H{}
	if token, err := c.Cookie(h.CookieName); err == nil && token != "" {
		if user, err := h.Service.Resolve(token); err == nil {
			data["Usuario"] = user
		}
	}
	c.HTML(http.StatusOK, "homepage.html", flashData(c, data))
}

// currentUser returns the id of the user resolved by RequireAuth.
func currentUser(c *gin.Context) (uint, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return 0, false
	}
	return user.ID, true
}
