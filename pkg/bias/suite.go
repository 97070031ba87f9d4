package bias

import (
	"context"
	"fmt"

	"github.com/Toulouse790/myfitherov3-sub000/internal"
	"github.com/Toulouse790/myfitherov3-sub000/pkg/models"
	"github.com/Toulouse790/myfitherov3-sub000/pkg/parser"
)

// BuiltinSuite loads the population suite embedded in the binary.
func BuiltinSuite(ctx context.Context) (*models.PopulationSuite, error) {
	p := parser.NewYAMLParser(true)

	suite, err := p.ParseSuitesFromFS(ctx, internal.GetBuiltinFS(), "builtin/bias")
	if err != nil {
		return nil, fmt.Errorf("failed to load builtin population suite: %w", err)
	}

	if len(suite.All()) == 0 {
		return nil, fmt.Errorf("builtin population suite is empty")
	}

	return suite, nil
}
