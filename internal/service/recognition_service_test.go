package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"plate-service/internal/model"
	"plate-service/internal/recognizer"
	"plate-service/internal/repository"
)

type fakeStore struct {
	created     *model.Recognition
	createErr   error
	getResult   *model.Recognition
	getErr      error
	listFilter  repository.RecognitionListFilter
	plateFilter repository.PlateReadListFilter
	reads       []model.PlateRead
}

func (f *fakeStore) Create(_ context.Context, recognition *model.Recognition) error {
	f.created = recognition
	return f.createErr
}

func (f *fakeStore) GetByID(_ context.Context, _ string) (*model.Recognition, error) {
	return f.getResult, f.getErr
}

func (f *fakeStore) List(_ context.Context, filter repository.RecognitionListFilter) ([]model.Recognition, error) {
	f.listFilter = filter
	return nil, nil
}

func (f *fakeStore) ListPlateReads(_ context.Context, filter repository.PlateReadListFilter) ([]model.PlateRead, error) {
	f.plateFilter = filter
	return f.reads, nil
}

type fakeDetector struct {
	fragments []model.TextFragment
	err       error
}

func (f *fakeDetector) DetectText(_ context.Context, _ string) ([]model.TextFragment, error) {
	return f.fragments, f.err
}

func newTestService(t *testing.T, store *fakeStore, detector *fakeDetector) *RecognitionService {
	t.Helper()
	rec, err := recognizer.New(recognizer.DefaultConfig())
	require.NoError(t, err)
	if detector == nil {
		detector = &fakeDetector{}
	}
	return NewRecognitionService(rec, store, detector)
}

func operator() model.Principal {
	return model.Principal{UserID: uuid.New(), OrgID: uuid.New(), Role: model.RoleOperator}
}

func admin() model.Principal {
	return model.Principal{UserID: uuid.New(), OrgID: uuid.New(), Role: model.RoleAdmin}
}

func TestRecognizePersistsPlates(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(t, store, nil)
	principal := operator()

	recognition, plates, err := svc.Recognize(context.Background(), principal, RecognizeInput{
		ImageRef: "s3://frames/0001.jpg",
		Fragments: []model.TextFragment{
			{Text: "NL01A", Confidence: 95.1, Order: 0},
			{Text: "J0044", Confidence: 99.6, Order: 1},
		},
	})
	require.NoError(t, err)

	require.Len(t, plates, 1)
	require.Equal(t, "NL01A J0044", plates[0].Text)

	require.NotNil(t, store.created)
	require.Same(t, recognition, store.created)
	require.Equal(t, "s3://frames/0001.jpg", recognition.ImageRef)
	require.Equal(t, 2, recognition.FragmentCount)
	require.Equal(t, 1, recognition.PlateCount)
	require.NotNil(t, recognition.RequestedBy)
	require.Equal(t, principal.UserID, *recognition.RequestedBy)

	require.Len(t, recognition.Plates, 1)
	read := recognition.Plates[0]
	require.Equal(t, "NL01A J0044", read.PlateNumber)
	require.Equal(t, "NL01AJ0044", read.NormalizedPlate)
	require.Equal(t, model.PlateSourceMerged, read.Source)
	require.False(t, read.IsLowConfidence)
}

func TestRecognizeDirectSource(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(t, store, nil)

	_, plates, err := svc.Recognize(context.Background(), operator(), RecognizeInput{
		ImageRef: "s3://frames/0002.jpg",
		Fragments: []model.TextFragment{
			{Text: "TS12 UD 3371", Confidence: 99.9, Order: 0},
		},
	})
	require.NoError(t, err)
	require.Len(t, plates, 1)
	require.Equal(t, model.PlateSourceDirect, store.created.Plates[0].Source)
}

func TestRecognizeEmptyResultIsPersisted(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(t, store, nil)

	_, plates, err := svc.Recognize(context.Background(), operator(), RecognizeInput{
		ImageRef: "s3://frames/0003.jpg",
		Fragments: []model.TextFragment{
			{Text: "ASHOK LEYLAND", Confidence: 93.8, Order: 0},
		},
	})
	require.NoError(t, err)
	require.Empty(t, plates)
	require.NotNil(t, store.created)
	require.Equal(t, 0, store.created.PlateCount)
	require.Empty(t, store.created.Plates)
}

func TestRecognizeRequiresOperatorRole(t *testing.T) {
	svc := newTestService(t, &fakeStore{}, nil)
	viewer := model.Principal{UserID: uuid.New(), Role: "VIEWER"}

	_, _, err := svc.Recognize(context.Background(), viewer, RecognizeInput{})
	require.ErrorIs(t, err, ErrPermissionDenied)
}

func TestRecognizeImage(t *testing.T) {
	store := &fakeStore{}
	detector := &fakeDetector{fragments: []model.TextFragment{
		{Text: "TS08 FW 3131", Confidence: 90.0, Order: 0},
	}}
	svc := newTestService(t, store, detector)

	_, plates, err := svc.RecognizeImage(context.Background(), operator(), "s3://frames/0004.jpg")
	require.NoError(t, err)
	require.Len(t, plates, 1)
	require.Equal(t, "TS08 FW 3131", plates[0].Text)
	require.Equal(t, "s3://frames/0004.jpg", store.created.ImageRef)
}

func TestRecognizeImageDetectorFailure(t *testing.T) {
	detector := &fakeDetector{err: errors.New("connection refused")}
	svc := newTestService(t, &fakeStore{}, detector)

	_, _, err := svc.RecognizeImage(context.Background(), operator(), "s3://frames/0005.jpg")
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestRecognizeImageEmptyRef(t *testing.T) {
	svc := newTestService(t, &fakeStore{}, nil)

	_, _, err := svc.RecognizeImage(context.Background(), operator(), "")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetMapsRecordNotFound(t *testing.T) {
	store := &fakeStore{getErr: gorm.ErrRecordNotFound}
	svc := newTestService(t, store, nil)

	_, err := svc.Get(context.Background(), admin(), uuid.NewString())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGetEnforcesOwnership(t *testing.T) {
	owner := uuid.New()
	store := &fakeStore{getResult: &model.Recognition{RequestedBy: &owner}}
	svc := newTestService(t, store, nil)

	_, err := svc.Get(context.Background(), operator(), uuid.NewString())
	require.ErrorIs(t, err, ErrPermissionDenied)

	got, err := svc.Get(context.Background(), admin(), uuid.NewString())
	require.NoError(t, err)
	require.Equal(t, store.getResult, got)
}

func TestListScopesNonAdmins(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(t, store, nil)
	principal := operator()

	_, err := svc.List(context.Background(), principal, repository.RecognitionListFilter{})
	require.NoError(t, err)
	require.NotNil(t, store.listFilter.RequestedBy)
	require.Equal(t, principal.UserID.String(), *store.listFilter.RequestedBy)

	_, err = svc.List(context.Background(), admin(), repository.RecognitionListFilter{})
	require.NoError(t, err)
	require.Nil(t, store.listFilter.RequestedBy)
}

func TestSearchPlatesNormalizesQuery(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(t, store, nil)

	query := "ts 08-fw 3131"
	_, err := svc.SearchPlates(context.Background(), operator(), repository.PlateReadListFilter{NormalizedPlate: &query})
	require.NoError(t, err)
	require.NotNil(t, store.plateFilter.NormalizedPlate)
	require.Equal(t, "TS08FW3131", *store.plateFilter.NormalizedPlate)

	junk := "---"
	_, err = svc.SearchPlates(context.Background(), operator(), repository.PlateReadListFilter{NormalizedPlate: &junk})
	require.ErrorIs(t, err, ErrInvalidInput)
}
