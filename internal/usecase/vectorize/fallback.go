package vectorize

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/emosense-cloud/emosense/internal/domain"
)

// BuildClassifier walks the loader chain and returns the first classifier
// that loads, along with the winning loader's name. Loader errors are
// accumulated so the caller can see every failed strategy, not just the last.
func BuildClassifier(loaders []Loader, logger *zap.Logger) (Classifier, string, error) {
	var errs []error
	for _, l := range loaders {
		c, err := l.Load()
		if err != nil {
			logger.Warn("Classifier loader failed",
				zap.String("loader", l.Name),
				zap.Error(err),
			)
			errs = append(errs, fmt.Errorf("%s: %w", l.Name, err))
			continue
		}
		logger.Info("Classifier loaded", zap.String("loader", l.Name))
		return c, l.Name, nil
	}
	return nil, "", fmt.Errorf("%w: all classifier loaders failed: %w",
		domain.ErrDependencyUnavailable, errors.Join(errs...))
}
