package service

import (
	"context"
	"fmt"

	"studio/infras/otel"
	bookingModel "studio/internal/domains/booking/model"
	bookingRepo "studio/internal/domains/booking/repository"
	inquiryModel "studio/internal/domains/inquiry/model"
	inquiryRepo "studio/internal/domains/inquiry/repository"
	"studio/internal/domains/stats/model/dto"
	"studio/shared/constant"
	gDto "studio/shared/dto"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type Stats interface {
	// Get counts bookings and inquiries, in total and still pending.
	Get(ctx context.Context) (dto.StatsResponse, error)
}

type serviceImpl struct {
	bookingRepo bookingRepo.Booking
	inquiryRepo inquiryRepo.Inquiry
	otel        otel.Otel
}

func New(bookingRepo bookingRepo.Booking, inquiryRepo inquiryRepo.Inquiry, otel otel.Otel) Stats {
	return &serviceImpl{
		bookingRepo: bookingRepo,
		inquiryRepo: inquiryRepo,
		otel:        otel,
	}
}

func (s *serviceImpl) Get(ctx context.Context) (res dto.StatsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".stats.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	group, groupCtx := errgroup.WithContext(ctx)

	count := func(target *int, counter func(context.Context, gDto.FilterGroup) (int, error), filter gDto.FilterGroup) {
		group.Go(func() error {
			total, err := counter(groupCtx, filter)
			if err != nil {
				return err
			}

			*target = total

			return nil
		})
	}

	count(&res.TotalBookings, s.bookingRepo.Count, gDto.FilterGroup{})
	count(&res.PendingBookings, s.bookingRepo.Count, gDto.Eq(bookingModel.FieldStatus, string(bookingModel.StatusPending)))
	count(&res.TotalInquiries, s.inquiryRepo.Count, gDto.FilterGroup{})
	count(&res.PendingInquiries, s.inquiryRepo.Count, gDto.Eq(inquiryModel.FieldStatus, string(inquiryModel.StatusPending)))

	if err = group.Wait(); err != nil {
		log.Error().Err(err).Msg("failed to count stats")

		return dto.StatsResponse{}, fmt.Errorf("failed to count stats: %w", err)
	}

	return res, nil
}
