package server

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/didip/tollbooth/v7"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/mint-labs/nft-registry/registry"
	registryService "github.com/mint-labs/nft-registry/server/registry"
)

const (
	STRICT_TRANSPORT_SECURITY   = "strict-transport-security"
	CONTENT_SECURITY_POLICY     = "content-security-policy"
	VARY                        = "vary"
	ACCESS_CONTROL_ALLOW_ORIGIN = "access-control-allow-origin"
)

type Rpc struct {
	registryService *registryService.Service
}

func NewRpc(reg *registry.Registry) *Rpc {
	return &Rpc{
		registryService: registryService.NewService(reg),
	}
}

func (s *Rpc) Start(rpcUrl, rpcProxy, rpcLogFile string) error {
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	var writers []io.Writer
	if rpcLogFile != "" {
		exePath, _ := os.Executable()
		executableName := filepath.Base(exePath) + ".rpc"
		fileHook, err := rotatelogs.New(
			rpcLogFile+"/"+executableName+".%Y%m%d%H%M.log",
			rotatelogs.WithLinkName(rpcLogFile+"/"+executableName+".log"),
			rotatelogs.WithMaxAge(7*24*time.Hour),
			rotatelogs.WithRotationTime(24*time.Hour),
		)
		if err != nil {
			return errors.Wrap(err, "failed to create RotateFile hook")
		}
		writers = append(writers, fileHook)
	}
	writers = append(writers, os.Stdout)
	gin.DefaultWriter = io.MultiWriter(writers...)

	r.Use(logger.SetLogger(
		logger.WithLogger(logger.Fn(func(c *gin.Context, l zerolog.Logger) zerolog.Logger {
			predecessor := c.GetHeader("X-Predecessor-Account")
			if predecessor == "" {
				return l
			}
			return l.With().
				Str("predecessor", predecessor).
				Logger()
		})),
	))

	config := cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Length", "Content-Type",
			"X-Predecessor-Account", "X-Signer-Account"},
		MaxAge: 12 * time.Hour,
	}
	config.OptionsResponseStatusCode = 200
	r.Use(cors.New(config))

	lmt := tollbooth.NewLimiter(50, nil)
	r.Use(func(c *gin.Context) {
		if httpError := tollbooth.LimitByRequest(lmt, c.Writer, c.Request); httpError != nil {
			c.AbortWithStatusJSON(httpError.StatusCode,
				gin.H{"code": -1, "msg": httpError.Message})
			return
		}
		c.Next()
	})

	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set(VARY, "Origin")
		c.Writer.Header().Add(VARY, "Access-Control-Request-Method")
		c.Writer.Header().Add(VARY, "Access-Control-Request-Headers")

		c.Writer.Header().Set(CONTENT_SECURITY_POLICY, "default-src 'self'")
		c.Writer.Header().Set(STRICT_TRANSPORT_SECURITY,
			"max-age=31536000; includeSubDomains; preload")
		c.Writer.Header().Set(ACCESS_CONTROL_ALLOW_ORIGIN, "*")

		c.Next()
	})

	s.registryService.InitRouter(r, rpcProxy)

	parts := strings.Split(rpcUrl, ":")
	if len(parts) < 2 {
		rpcUrl += ":80"
	}

	go r.Run(rpcUrl)
	return nil
}
