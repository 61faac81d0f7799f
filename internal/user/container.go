package user

import (
	"github.com/saulo-duarte/goalie-lambda/internal/auth"
	"github.com/saulo-duarte/goalie-lambda/internal/config"
)

type Container struct {
	Handler *Handler
	Service UserService
}

type ContainerDeps struct {
	Repo        UserRepository
	Google      GoogleProvider
	Sessions    *auth.SessionManager
	Cipher      *config.Cipher
	Cookies     auth.CookieConfig
	FrontendURL string
}

func NewContainer(deps ContainerDeps) *Container {
	service := NewService(deps.Repo, deps.Google, deps.Sessions, deps.Cipher)
	handler := NewHandler(service, deps.Cookies, deps.Sessions.Issuer(), deps.FrontendURL)

	return &Container{
		Handler: handler,
		Service: service,
	}
}
