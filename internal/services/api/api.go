// Package api composes the HTTP API from worker and transport modules
package api

import (
	"time"

	"mouthwash/internal/core/lexicon"
	"mouthwash/internal/core/topic"
	"mouthwash/internal/platform/config"
	"mouthwash/internal/platform/logger"
	phttp "mouthwash/internal/platform/net/http"
	"mouthwash/internal/platform/net/middleware"
	"mouthwash/internal/platform/store"

	"mouthwash/internal/modkit"
	"mouthwash/internal/modkit/httpkit"
	"mouthwash/internal/modkit/module"
	"mouthwash/internal/modkit/swaggerkit"

	valclient "mouthwash/internal/adapters/validator"
	analyzemod "mouthwash/internal/services/api/analyze/module"
	apiflags "mouthwash/internal/services/api/flags/module"
	apilive "mouthwash/internal/services/api/live/module"
	metahttp "mouthwash/internal/services/api/meta/http"
	metamod "mouthwash/internal/services/api/meta/module"
	apitranscripts "mouthwash/internal/services/api/transcripts/module"

	workerflags "mouthwash/internal/services/flags/module"
	livedom "mouthwash/internal/services/live/domain"
	workerlive "mouthwash/internal/services/live/module"
	moddom "mouthwash/internal/services/moderation/domain"
	workermod "mouthwash/internal/services/moderation/module"
	workertranscripts "mouthwash/internal/services/transcripts/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	startedAt := time.Now()

	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
		CH:  opt.Store.CH,
	}

	// One matcher serves every module that scans text
	pack, err := lexicon.Load()
	if err != nil {
		panic(err)
	}
	matcher := lexicon.NewMatcher(pack)

	// Worker modules own the domain ports; transports below only adapt them
	transcripts := workertranscripts.New(deps)
	trPorts := module.MustPortsOf[workertranscripts.Ports](transcripts)

	flags := workerflags.New(deps)
	flPorts := module.MustPortsOf[workerflags.Ports](flags)

	// The validator is optional; moderation falls back open without one
	var vport moddom.ValidatorPort
	vf := opt.Config.Prefix("CORE_MOD_VALIDATOR_")
	if url := vf.MayString("URL", ""); url != "" {
		vport = valclient.New(valclient.Options{
			BaseURL:         url,
			Timeout:         vf.MayDuration("TIMEOUT", 0),
			BreakerFailures: uint32(vf.MayInt("BREAKER_FAILURES", 0)),
			BreakerCooldown: vf.MayDuration("BREAKER_COOLDOWN", 0),
		})
	}

	moderation := workermod.New(
		deps,
		workermod.Options{Matcher: matcher},
		modkit.WithPorts(moddom.Ports{
			Transcripts: trPorts.Reader,
			Flags:       flPorts.Writer,
			Validator:   vport,
		}),
	)
	modPorts := module.MustPortsOf[workermod.Ports](moderation)

	live := workerlive.New(
		deps,
		workerlive.Options{Matcher: matcher},
		modkit.WithPorts(livedom.Ports{
			Flags: flPorts.Writer,
		}),
	)
	livePorts := module.MustPortsOf[workerlive.Ports](live)

	// Analyze uses the server topic policy as its default lists
	mcfg := workermod.FromConfig(opt.Config)
	topicCfg := topic.Config{
		Keywords:   mcfg.TopicKeywords,
		Indicators: mcfg.OffTopicIndicators,
		Prompt:     mcfg.TopicPrompt,
	}

	// CORE_API_KEYS holds key:client pairs as CSV; unset leaves the API open
	var keys middleware.KeyPort
	if pairs := opt.Config.Prefix("CORE_API_").MayCSV("KEYS", nil); len(pairs) > 0 {
		keys = middleware.ParseStaticKeys(pairs)
	}

	// read-only transports mount in the open, mutating ones behind the key gate
	open := []module.Module{
		metamod.New(deps),
		apiflags.New(deps, modkit.WithPorts(apiflags.Ports{Flags: flPorts.Reader})),
	}
	guarded := []module.Module{
		analyzemod.New(
			deps,
			analyzemod.Options{Matcher: matcher, Topic: topicCfg},
			modkit.WithPorts(analyzemod.Ports{Moderation: modPorts.Service}),
		),
		apitranscripts.New(deps, modkit.WithPorts(apitranscripts.Ports{
			Writer: trPorts.Writer,
			Reader: trPorts.Reader,
		})),
		apilive.New(deps, modkit.WithPorts(apilive.Ports{Live: livePorts.Service})),
	}

	// workers register last so their ports win the name keys in the registry;
	// main resolves the live runner through module.PortsAs after Mount
	workers := []module.Module{transcripts, flags, moderation, live}

	mount := func(tr httpkit.Router, ms []module.Module) {
		for _, m := range ms {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(tr)
		}
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		mount(api, open)
		httpkit.Protected(api, keys, func(pr httpkit.Router) {
			mount(pr, guarded)
		})
		for _, m := range workers {
			module.Register(m.Name(), m.Ports())
		}
	})

	// unversioned probe aliases for load balancers
	metahttp.RegisterRoot(r, metahttp.Deps{
		ServiceName: "mouthwash-api",
		StartedAt:   startedAt,
		DetVer:      opt.Config.Prefix("CORE_MOD_").MayInt("DETVER", 1),
		PG:          opt.Store.PG,
		CH:          opt.Store.CH,
	})
}
