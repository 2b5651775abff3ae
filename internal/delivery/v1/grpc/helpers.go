package grpc

import (
	"errors"

	"github.com/DRSN-tech/visual-search/internal/domain"
	"github.com/DRSN-tech/visual-search/internal/proto"
	"github.com/DRSN-tech/visual-search/internal/usecase"
	"github.com/DRSN-tech/visual-search/pkg/e"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func GRPCErrorResponse(err error) error {
	if reason, ok := e.UploadReason(err); ok {
		return status.Error(codes.InvalidArgument, reason)
	}

	switch {
	case errors.Is(err, e.ErrInvalidSortMode):
		return status.Error(codes.InvalidArgument, e.ErrInvalidSortMode.Error())
	case errors.Is(err, e.ErrSearchCancelled):
		return status.Error(codes.Canceled, e.ErrSearchCancelled.Error())
	case errors.Is(err, e.ErrModelUnavailable):
		return status.Error(codes.Unavailable, e.ErrModelUnavailable.Error())
	case errors.Is(err, e.ErrQueryExtractionFailed):
		return status.Error(codes.InvalidArgument, e.ErrQueryExtractionFailed.Error())
	case errors.Is(err, e.ErrRenderingUnavailable):
		return status.Error(codes.Internal, e.ErrRenderingUnavailable.Error())
	case errors.Is(err, e.ErrSearchFailed):
		return status.Error(codes.Aborted, e.ErrSearchFailed.Error())
	default:
		return status.Error(codes.Internal, e.ErrInternalServerError.Error())
	}
}

func toSearchReq(req *proto.SearchRequest) (*usecase.SearchReq, error) {
	sort, ok := domain.ParseSortMode(req.GetSort())
	if !ok {
		return nil, e.Wrap(req.GetSort(), e.ErrInvalidSortMode)
	}

	var upload *domain.Upload
	if image := req.GetImage(); len(image) > 0 {
		upload = domain.NewUpload(image, req.GetMimeType(), int64(len(image)), req.GetFileName())
	}

	return usecase.NewSearchReq(upload, sort, max(int(req.GetLimit()), 0)), nil
}

func toGRPCProduct(item *usecase.ResultItem) *proto.Product {
	return &proto.Product{
		Id:             item.ProductID,
		Name:           item.Name,
		Category:       item.CategoryName,
		Price:          item.Price,
		PriceFormatted: item.PriceFormatted,
		ImageUrl:       item.ImageURL,
		Similarity:     item.Similarity,
		MatchLabel:     item.MatchLabel,
	}
}

func toSearchResponse(res *usecase.SearchRes) *proto.SearchResponse {
	products := make([]*proto.Product, len(res.Results))
	for i := range res.Results {
		products[i] = toGRPCProduct(&res.Results[i])
	}

	return &proto.SearchResponse{
		SearchId:     res.SearchID,
		Summary:      res.Summary,
		Scanned:      int32(res.Scanned),
		Skipped:      int32(res.Skipped),
		ModelVersion: res.ModelVersion,
		Products:     products,
	}
}
