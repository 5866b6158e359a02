// internal/app/system/identity/verifier.go
package identity

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/ecofine/ecofine-api/internal/app/system/apperr"
	"github.com/ecofine/ecofine-api/internal/app/system/normalize"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// Verifier validates a bearer credential against the identity provider.
type Verifier interface {
	Verify(ctx context.Context, credential string) (Identity, error)
}

// DefaultCertsURL is the provider's public key endpoint for tokens minted
// by Firebase Authentication (Google securetoken).
const DefaultCertsURL = "https://www.googleapis.com/robot/v1/metadata/x509/securetoken@system.gserviceaccount.com"

// certsMinRefreshInterval throttles refetches when a token carries an
// unknown kid, so a flood of bad tokens cannot hammer the provider.
const certsMinRefreshInterval = 30 * time.Second

// GoogleVerifier validates RS256 ID tokens issued for a Firebase project.
// Signing certs are fetched from the provider's public endpoint and cached
// by kid; the cache refreshes when an unknown kid appears. Token verdicts
// themselves are not cached.
type GoogleVerifier struct {
	projectID string
	certsURL  string
	client    *http.Client
	log       *zap.Logger

	mu        sync.RWMutex
	keys      map[string]*rsa.PublicKey
	fetchedAt time.Time
}

// NewGoogleVerifier constructs a verifier for the given project. certsURL
// may be empty to use DefaultCertsURL.
func NewGoogleVerifier(projectID, certsURL string, logger *zap.Logger) *GoogleVerifier {
	if certsURL == "" {
		certsURL = DefaultCertsURL
	}
	return &GoogleVerifier{
		projectID: projectID,
		certsURL:  certsURL,
		client:    &http.Client{Timeout: 10 * time.Second},
		log:       logger,
	}
}

// providerClaims is the subset of ID token claims this service reads.
type providerClaims struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
	jwt.RegisteredClaims
}

// Verify validates the credential's signature, audience, issuer, and
// expiry, and returns the identity it asserts. Every failure class maps to
// an authentication error; callers cannot distinguish a forged token from
// an expired one.
func (v *GoogleVerifier) Verify(ctx context.Context, credential string) (Identity, error) {
	claims := &providerClaims{}
	token, err := jwt.ParseWithClaims(credential, claims,
		func(t *jwt.Token) (interface{}, error) {
			kid, _ := t.Header["kid"].(string)
			if kid == "" {
				return nil, errors.New("token has no kid header")
			}
			return v.key(ctx, kid)
		},
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithAudience(v.projectID),
		jwt.WithIssuer("https://securetoken.google.com/"+v.projectID),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		if v.log != nil {
			v.log.Debug("credential rejected", zap.Error(err))
		}
		return Identity{}, apperr.Unauthenticated("invalid credential")
	}
	if claims.Email == "" {
		return Identity{}, apperr.Unauthenticated("credential carries no email")
	}
	return Identity{
		Email:   normalize.Email(claims.Email),
		Subject: claims.Subject,
		Name:    claims.Name,
		Photo:   claims.Picture,
	}, nil
}

// key returns the public key for kid, refreshing the cert cache when the
// kid is unknown (key rotation).
func (v *GoogleVerifier) key(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	v.mu.RLock()
	k := v.keys[kid]
	v.mu.RUnlock()
	if k != nil {
		return k, nil
	}

	if err := v.refresh(ctx); err != nil {
		return nil, err
	}

	v.mu.RLock()
	defer v.mu.RUnlock()
	if k := v.keys[kid]; k != nil {
		return k, nil
	}
	return nil, fmt.Errorf("unknown signing key %q", kid)
}

// refresh fetches the cert map (kid -> PEM certificate) from the provider.
func (v *GoogleVerifier) refresh(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if len(v.keys) > 0 && time.Since(v.fetchedAt) < certsMinRefreshInterval {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.certsURL, nil)
	if err != nil {
		return err
	}
	resp, err := v.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetching signing certs: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("signing cert endpoint returned status %d", resp.StatusCode)
	}

	var pems map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&pems); err != nil {
		return fmt.Errorf("decoding signing certs: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(pems))
	for kid, pemCert := range pems {
		pub, err := jwt.ParseRSAPublicKeyFromPEM([]byte(pemCert))
		if err != nil {
			if v.log != nil {
				v.log.Warn("skipping unparsable signing cert", zap.String("kid", kid), zap.Error(err))
			}
			continue
		}
		keys[kid] = pub
	}
	if len(keys) == 0 {
		return errors.New("signing cert endpoint returned no usable keys")
	}

	v.keys = keys
	v.fetchedAt = time.Now()
	return nil
}
