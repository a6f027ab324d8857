package transport

import (
	"context"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	wagon "github.com/mutablelogic/go-s3wagon"
	schema "github.com/mutablelogic/go-s3wagon/pkg/schema"
)

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Connect to a repository. Authentication and proxy information are
// optional. Connection and authentication errors from the backend are
// returned unchanged, and any other error is returned as a connection error.
func (t *Transport) Connect(ctx context.Context, repo *schema.Repository, auth *schema.AuthenticationInfo, proxy schema.ProxyInfoProvider) (result error) {
	// OTEL span
	child, endFunc := otel.StartSpan(t.tracer, ctx, spanTransportName("Connect"))
	defer func() { endFunc(result) }()

	t.repository = repo
	t.sessions.FireSessionOpening()
	if err := t.backend.ConnectToRepository(child, schema.ConnectRequest{
		Repository:  repo,
		Auth:        auth,
		Proxy:       proxy,
		Timeout:     t.timeout,
		ReadTimeout: t.readTimeout,
	}); err != nil {
		if kind := wagon.KindOf(err); kind != wagon.ErrConnection && kind != wagon.ErrAuthentication {
			err = wagon.NewError(wagon.ErrConnection, "connect", repositoryName(repo), err)
		}
		t.sessions.FireSessionConnectionRefused(err)
		t.logger.Debug().Err(err).Str("repository", repositoryName(repo)).Msg("connection refused")
		return err
	}
	t.sessions.FireSessionLoggedIn()
	t.sessions.FireSessionOpened()
	t.logger.Debug().Str("repository", repositoryName(repo)).Msg("connected")

	// Return success
	return nil
}

// ConnectWithProxy connects to a repository with a single proxy, which is
// used when the backend asks for a proxy matching the proxy type
func (t *Transport) ConnectWithProxy(ctx context.Context, repo *schema.Repository, auth *schema.AuthenticationInfo, proxy *schema.ProxyInfo) error {
	return t.Connect(ctx, repo, auth, schema.NewProxyInfoProvider(proxy))
}

// Disconnect from the repository. Connection errors from the backend are
// returned unchanged, and any other error is returned as a connection error.
func (t *Transport) Disconnect(ctx context.Context) (result error) {
	// OTEL span
	child, endFunc := otel.StartSpan(t.tracer, ctx, spanTransportName("Disconnect"))
	defer func() { endFunc(result) }()

	t.sessions.FireSessionDisconnecting()
	if err := t.backend.DisconnectFromRepository(child); err != nil {
		if wagon.KindOf(err) != wagon.ErrConnection {
			err = wagon.NewError(wagon.ErrConnection, "disconnect", repositoryName(t.repository), err)
		}
		t.sessions.FireSessionConnectionRefused(err)
		t.logger.Debug().Err(err).Msg("disconnect failed")
		return err
	}
	t.sessions.FireSessionLoggedOff()
	t.sessions.FireSessionDisconnected()
	t.logger.Debug().Str("repository", repositoryName(t.repository)).Msg("disconnected")

	// Return success
	return nil
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func repositoryName(repo *schema.Repository) string {
	if repo == nil || repo.URL == nil {
		return ""
	}
	return repo.URL.Redacted()
}
