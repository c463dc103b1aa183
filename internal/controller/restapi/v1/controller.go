package v1

import (
	"time"

	"github.com/andreyxaxa/Image-To-3D/internal/usecase"
	"github.com/andreyxaxa/Image-To-3D/pkg/logger"
	"golang.org/x/time/rate"
)

type V1 struct {
	sessions usecase.SessionUseCase
	sel      usecase.SelectorUseCase
	pres     usecase.PresenterUseCase
	logger   logger.Interface
	limiter  *rate.Limiter

	cookieName  string
	waitTimeout time.Duration
}
