package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"plate-service/internal/model"
	"plate-service/internal/recognizer"
	"plate-service/internal/repository"
	"plate-service/internal/utils"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidInput     = errors.New("invalid input")
	ErrUnavailable      = errors.New("upstream unavailable")
)

// RecognitionStore is the persistence surface the service needs; satisfied by
// repository.RecognitionRepository.
type RecognitionStore interface {
	Create(ctx context.Context, recognition *model.Recognition) error
	GetByID(ctx context.Context, id string) (*model.Recognition, error)
	List(ctx context.Context, filter repository.RecognitionListFilter) ([]model.Recognition, error)
	ListPlateReads(ctx context.Context, filter repository.PlateReadListFilter) ([]model.PlateRead, error)
}

// TextDetector fetches OCR fragments for an image reference; satisfied by
// client.OCRClient.
type TextDetector interface {
	DetectText(ctx context.Context, imageRef string) ([]model.TextFragment, error)
}

type RecognitionService struct {
	recognizer *recognizer.Recognizer
	store      RecognitionStore
	detector   TextDetector
}

func NewRecognitionService(rec *recognizer.Recognizer, store RecognitionStore, detector TextDetector) *RecognitionService {
	return &RecognitionService{
		recognizer: rec,
		store:      store,
		detector:   detector,
	}
}

type RecognizeInput struct {
	ImageRef  string
	Fragments []model.TextFragment
}

// Recognize runs the plate pipeline over the supplied fragments and persists
// the call with its extracted plates. An empty plate list is a valid outcome
// and is persisted as such.
func (s *RecognitionService) Recognize(ctx context.Context, principal model.Principal, input RecognizeInput) (*model.Recognition, []model.PlateResult, error) {
	if !principal.IsAdmin() && !principal.IsOperator() {
		return nil, nil, ErrPermissionDenied
	}

	detailed := s.recognizer.RecognizeDetailed(input.Fragments)

	recognition := &model.Recognition{
		ImageRef:             input.ImageRef,
		RequestedBy:          &principal.UserID,
		FragmentCount:        len(input.Fragments),
		PlateCount:           len(detailed),
		IncludeLowConfidence: s.recognizer.IncludesLowConfidence(),
	}
	results := make([]model.PlateResult, 0, len(detailed))
	for _, plate := range detailed {
		results = append(results, plate.PlateResult)
		recognition.Plates = append(recognition.Plates, model.PlateRead{
			PlateNumber:     plate.Text,
			NormalizedPlate: utils.NormalizePlate(plate.Text),
			Confidence:      plate.Confidence,
			IsLowConfidence: plate.IsLowConfidence,
			Source:          plate.Source,
		})
	}

	if err := s.store.Create(ctx, recognition); err != nil {
		return nil, nil, err
	}

	return recognition, results, nil
}

// RecognizeImage fetches fragments from the text-detection service first,
// then runs the same pipeline.
func (s *RecognitionService) RecognizeImage(ctx context.Context, principal model.Principal, imageRef string) (*model.Recognition, []model.PlateResult, error) {
	if !principal.IsAdmin() && !principal.IsOperator() {
		return nil, nil, ErrPermissionDenied
	}
	if imageRef == "" {
		return nil, nil, ErrInvalidInput
	}

	fragments, err := s.detector.DetectText(ctx, imageRef)
	if err != nil {
		return nil, nil, errors.Join(ErrUnavailable, err)
	}

	return s.Recognize(ctx, principal, RecognizeInput{ImageRef: imageRef, Fragments: fragments})
}

func (s *RecognitionService) Get(ctx context.Context, principal model.Principal, id string) (*model.Recognition, error) {
	recognition, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !principal.IsAdmin() && (recognition.RequestedBy == nil || *recognition.RequestedBy != principal.UserID) {
		return nil, ErrPermissionDenied
	}

	return recognition, nil
}

func (s *RecognitionService) List(ctx context.Context, principal model.Principal, filter repository.RecognitionListFilter) ([]model.Recognition, error) {
	if !principal.IsAdmin() {
		requestedBy := principal.UserID.String()
		filter.RequestedBy = &requestedBy
	}
	return s.store.List(ctx, filter)
}

// SearchPlates finds persisted plate reads by plate number, normalizing the
// query the same way reads are keyed.
func (s *RecognitionService) SearchPlates(ctx context.Context, principal model.Principal, filter repository.PlateReadListFilter) ([]model.PlateRead, error) {
	if !principal.IsAdmin() && !principal.IsOperator() {
		return nil, ErrPermissionDenied
	}
	if filter.NormalizedPlate != nil {
		normalized := utils.NormalizePlate(*filter.NormalizedPlate)
		if normalized == "" {
			return nil, ErrInvalidInput
		}
		filter.NormalizedPlate = &normalized
	}
	return s.store.ListPlateReads(ctx, filter)
}
