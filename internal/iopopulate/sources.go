package iopopulate

import (
	"context"
	"log/slog"
	"time"

	"github.com/civicdata/legisdb/internal/iosources"
	"github.com/civicdata/legisdb/pkg/config"
	"github.com/civicdata/legisdb/pkg/record"
)

// Sources opens the sources enabled in the configuration. The federal
// roster goes first, so state records can match the names it stores.
func Sources(ctx context.Context, cfg *config.Config) ([]record.Source, error) {
	var res []record.Source
	pc := cfg.Populate

	if !pc.SkipFederal {
		timeout := time.Duration(pc.FetchTimeout) * time.Second
		data, err := iosources.FetchFederal(ctx, pc.FederalSource, timeout)
		if err != nil {
			return nil, err
		}
		src, err := iosources.NewFederal(pc.FederalSource, data)
		if err != nil {
			return nil, err
		}
		res = append(res, src)
	} else {
		slog.Info("Federal roster is skipped")
	}

	if !pc.SkipState {
		src, err := iosources.NewState(pc.StateDir)
		if err != nil {
			return nil, err
		}
		res = append(res, src)
	} else {
		slog.Info("State files are skipped")
	}

	if len(res) == 0 {
		return nil, NoSourcesError()
	}
	return res, nil
}
