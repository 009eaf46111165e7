package v1

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"mutants.dev/backend/internal/app/appconfig"
	"mutants.dev/backend/internal/constant"
	"mutants.dev/backend/internal/model/types"
	modelv1 "mutants.dev/backend/internal/model/v1"
	"mutants.dev/backend/internal/pkg/apierr"
	"mutants.dev/backend/internal/pkg/cachectrl"
	"mutants.dev/backend/internal/pkg/dna"
	"mutants.dev/backend/internal/pkg/fiberstore"
	"mutants.dev/backend/internal/server/svr"
	"mutants.dev/backend/internal/service"
	"mutants.dev/backend/internal/util/rekuest"
)

type Mutant struct {
	fx.In

	Conf          *appconfig.Config
	MutantService *service.Mutant
	StatsService  *service.Stats
	Redis         *redis.Client `optional:"true"`
}

func RegisterMutant(v1 *svr.V1, c Mutant) {
	v1.Post("/mutant", classifyLimiter(c.Conf, c.Redis), c.Classify)
	v1.Get("/mutant/stats", c.GetStats)
}

// classifyLimiter counts requests per client IP. With Redis configured the counters are
// shared by every instance.
func classifyLimiter(conf *appconfig.Config, client *redis.Client) fiber.Handler {
	if conf.RateLimitMax <= 0 {
		return func(ctx *fiber.Ctx) error {
			return ctx.Next()
		}
	}

	cfg := limiter.Config{
		Max:        conf.RateLimitMax,
		Expiration: conf.RateLimitWindow,
		LimitReached: func(ctx *fiber.Ctx) error {
			return apierr.ErrTooManyRequests
		},
	}
	if client != nil {
		cfg.Storage = fiberstore.NewRedis(client, constant.LimiterKeyPrefix)
	}
	return limiter.New(cfg)
}

// Classify answers 200 for a mutant grid and 403 for a human one.
func (c *Mutant) Classify(ctx *fiber.Ctx) error {
	var req types.MutantRequest
	if err := rekuest.ValidBody(ctx, &req); err != nil {
		return err
	}

	result, err := c.MutantService.Classify(ctx.UserContext(), req.DNA)
	if err != nil {
		var verr *dna.ValidationError
		if errors.As(err, &verr) {
			return apierr.ErrInvalidDNA.
				Msg("%s", verr.Error()).
				WithExtras(apierr.Extras{"reason": verr.Kind})
		}
		return err
	}

	cachectrl.OptOut(ctx)
	if !result.IsMutant {
		return apierr.ErrForbidden
	}

	return ctx.JSON(modelv1.MutantResponse{IsMutant: true})
}

func (c *Mutant) GetStats(ctx *fiber.Ctx) error {
	stats, err := c.StatsService.GetStats(ctx.UserContext())
	if err != nil {
		return err
	}

	cachectrl.OptIn(ctx, c.Conf.StatsCacheTTL)
	return ctx.JSON(stats)
}
