package grpc

import (
	"context"

	"github.com/DRSN-tech/visual-search/internal/domain"
	"github.com/DRSN-tech/visual-search/internal/proto"
	"github.com/DRSN-tech/visual-search/internal/usecase"
	"github.com/DRSN-tech/visual-search/pkg/e"
	"github.com/DRSN-tech/visual-search/pkg/logger"
	"google.golang.org/grpc"
)

type SearchService struct {
	proto.UnimplementedVisualSearchServiceServer
	searchUC usecase.VisualSearchUC
	logger   logger.Logger
}

func NewSearchService(searchUC usecase.VisualSearchUC, logger logger.Logger) *SearchService {
	return &SearchService{searchUC: searchUC, logger: logger}
}

func (g *SearchService) Search(ctx context.Context, req *proto.SearchRequest) (*proto.SearchResponse, error) {
	const op = "grpc.Search"

	searchReq, err := toSearchReq(req)
	if err != nil {
		return nil, GRPCErrorResponse(err)
	}

	res, err := g.searchUC.Search(ctx, searchReq, nil)
	if err != nil {
		g.logger.Warnf("%s: %v", op, err)
		return nil, GRPCErrorResponse(e.Wrap(op, err))
	}

	return toSearchResponse(res), nil
}

// SearchStream отправляет прогресс по мере поиска и итоговый результат последним сообщением.
func (g *SearchService) SearchStream(req *proto.SearchRequest, stream grpc.ServerStreamingServer[proto.SearchUpdate]) error {
	const op = "grpc.SearchStream"

	searchReq, err := toSearchReq(req)
	if err != nil {
		return GRPCErrorResponse(err)
	}

	ctx, cancel := context.WithCancel(stream.Context())
	defer cancel()

	// отправка идёт из горутины поиска; ошибка отправки отменяет поиск
	reporter := usecase.ProgressFunc(func(p domain.SearchProgress) {
		if p.State == domain.StateDone || p.State == domain.StateError {
			return
		}
		if err := stream.Send(&proto.SearchUpdate{State: string(p.State), Progress: p.Percent, Status: p.Status}); err != nil {
			g.logger.Debugf("%s: send progress: %v", op, err)
			cancel()
		}
	})

	res, err := g.searchUC.Search(ctx, searchReq, reporter)
	if err != nil {
		g.logger.Warnf("%s: %v", op, err)
		return GRPCErrorResponse(e.Wrap(op, err))
	}

	return stream.Send(&proto.SearchUpdate{
		State:    string(domain.StateDone),
		Progress: 100,
		Status:   res.Summary,
		Result:   toSearchResponse(res),
	})
}
