package service

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	numeroAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	numeroLength   = 6
)

type NumeroChecker interface {
	NumeroExists(ctx context.Context, numero string) (bool, error)
}

// NumberGenerator produces the short customer-facing order code. It draws
// uniformly from [A-Z0-9] and checks the draw against existing orders; the
// check is a collision-probability optimization, not a guarantee. The
// unique index on pedidos.numero is what actually enforces uniqueness.
type NumberGenerator struct {
	repo        NumeroChecker
	logger      *zap.Logger
	maxAttempts int
}

func NewNumberGenerator(repo NumeroChecker, logger *zap.Logger, maxAttempts int) *NumberGenerator {
	if maxAttempts <= 0 {
		maxAttempts = 10
	}
	return &NumberGenerator{
		repo:        repo,
		logger:      logger,
		maxAttempts: maxAttempts,
	}
}

// Generate always returns a 6-character code. If every attempt collides
// (or the existence check keeps failing) it falls back to a hash-derived
// code that is not re-checked; the residual collision risk is accepted and
// caught by the unique index on insert.
func (g *NumberGenerator) Generate(ctx context.Context) string {
	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		numero := randomNumero()

		exists, err := g.repo.NumeroExists(ctx, numero)
		if err != nil {
			g.logger.Warn("order number existence check failed",
				zap.String("numero", numero), zap.Error(err))
			continue
		}
		if !exists {
			return numero
		}
	}

	numero := fallbackNumero()
	g.logger.Warn("order number attempts exhausted, using hash fallback",
		zap.String("numero", numero), zap.Int("attempts", g.maxAttempts))
	return numero
}

func randomNumero() string {
	var b strings.Builder
	b.Grow(numeroLength)
	for i := 0; i < numeroLength; i++ {
		b.WriteByte(numeroAlphabet[rand.IntN(len(numeroAlphabet))])
	}
	return b.String()
}

func fallbackNumero() string {
	sum := md5.Sum([]byte(fmt.Sprintf("%d%d", time.Now().UnixNano(), rand.Int64())))
	return strings.ToUpper(hex.EncodeToString(sum[:])[:numeroLength])
}
