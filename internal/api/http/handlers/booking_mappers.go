package handlers

import (
	"strings"

	"github.com/spec-kit/crud-backends/internal/api/dto"
	"github.com/spec-kit/crud-backends/internal/domain"
	"github.com/spec-kit/crud-backends/internal/service"
)

func venueResponse(v *domain.Venue) dto.VenueResponse {
	return dto.VenueResponse{
		ID:                 v.ID,
		Name:               v.Name,
		City:               v.City,
		State:              v.State,
		Address:            v.Address,
		Phone:              v.Phone,
		Genres:             nonNil(v.Genres),
		ImageLink:          v.ImageLink,
		FacebookLink:       v.FacebookLink,
		Website:            v.Website,
		SeekingTalent:      v.SeekingTalent,
		SeekingDescription: v.SeekingDescription,
	}
}

func venueDetailResponse(d *domain.VenueDetail) dto.VenueDetailResponse {
	return dto.VenueDetailResponse{
		VenueResponse:      venueResponse(&d.Venue),
		PastShows:          venueShows(d.PastShows),
		UpcomingShows:      venueShows(d.UpcomingShows),
		PastShowsCount:     len(d.PastShows),
		UpcomingShowsCount: len(d.UpcomingShows),
	}
}

func venueShows(shows []domain.VenueShow) []dto.VenueShowResponse {
	out := make([]dto.VenueShowResponse, 0, len(shows))
	for _, s := range shows {
		out = append(out, dto.VenueShowResponse{
			ArtistID:        s.ArtistID,
			ArtistName:      s.ArtistName,
			ArtistImageLink: s.ArtistImageLink,
			StartTime:       dto.FormatTime(s.StartTime),
		})
	}
	return out
}

func artistResponse(a *domain.Artist) dto.ArtistResponse {
	return dto.ArtistResponse{
		ID:                 a.ID,
		Name:               a.Name,
		City:               a.City,
		State:              a.State,
		Phone:              a.Phone,
		Genres:             nonNil(a.Genres),
		ImageLink:          a.ImageLink,
		FacebookLink:       a.FacebookLink,
		Website:            a.Website,
		SeekingVenues:      a.SeekingVenues,
		SeekingDescription: a.SeekingDescription,
	}
}

func artistDetailResponse(d *domain.ArtistDetail) dto.ArtistDetailResponse {
	return dto.ArtistDetailResponse{
		ArtistResponse:     artistResponse(&d.Artist),
		PastShows:          artistShows(d.PastShows),
		UpcomingShows:      artistShows(d.UpcomingShows),
		PastShowsCount:     len(d.PastShows),
		UpcomingShowsCount: len(d.UpcomingShows),
	}
}

func artistShows(shows []domain.ArtistShow) []dto.ArtistShowResponse {
	out := make([]dto.ArtistShowResponse, 0, len(shows))
	for _, s := range shows {
		out = append(out, dto.ArtistShowResponse{
			VenueID:        s.VenueID,
			VenueName:      s.VenueName,
			VenueImageLink: s.VenueImageLink,
			StartTime:      dto.FormatTime(s.StartTime),
		})
	}
	return out
}

func venueSummaries(items []domain.VenueSummary) []dto.SummaryResponse {
	out := make([]dto.SummaryResponse, 0, len(items))
	for _, s := range items {
		out = append(out, dto.SummaryResponse{ID: s.ID, Name: s.Name, NumUpcomingShows: s.NumUpcomingShows})
	}
	return out
}

func artistSummaries(items []domain.ArtistSummary) []dto.SummaryResponse {
	out := make([]dto.SummaryResponse, 0, len(items))
	for _, s := range items {
		out = append(out, dto.SummaryResponse{ID: s.ID, Name: s.Name, NumUpcomingShows: s.NumUpcomingShows})
	}
	return out
}

func venueFromRequest(req dto.VenueRequest) *domain.Venue {
	return &domain.Venue{
		Name:               strings.TrimSpace(req.Name),
		City:               strings.TrimSpace(req.City),
		State:              strings.TrimSpace(req.State),
		Address:            strings.TrimSpace(req.Address),
		Phone:              strings.TrimSpace(req.Phone),
		Genres:             req.Genres,
		ImageLink:          blankToNil(req.ImageLink),
		FacebookLink:       blankToNil(req.FacebookLink),
		Website:            blankToNil(req.Website),
		SeekingTalent:      req.SeekingTalent,
		SeekingDescription: blankToNil(req.SeekingDescription),
	}
}

func venuePatch(req dto.VenuePatchRequest) service.VenuePatch {
	return service.VenuePatch{
		Name:               req.Name,
		City:               req.City,
		State:              req.State,
		Address:            req.Address,
		Phone:              req.Phone,
		Genres:             req.Genres,
		ImageLink:          req.ImageLink,
		FacebookLink:       req.FacebookLink,
		Website:            req.Website,
		SeekingTalent:      req.SeekingTalent,
		SeekingDescription: req.SeekingDescription,
	}
}

func artistFromRequest(req dto.ArtistRequest) *domain.Artist {
	return &domain.Artist{
		Name:               strings.TrimSpace(req.Name),
		City:               strings.TrimSpace(req.City),
		State:              strings.TrimSpace(req.State),
		Phone:              strings.TrimSpace(req.Phone),
		Genres:             req.Genres,
		ImageLink:          blankToNil(req.ImageLink),
		FacebookLink:       blankToNil(req.FacebookLink),
		Website:            blankToNil(req.Website),
		SeekingVenues:      req.SeekingVenues,
		SeekingDescription: blankToNil(req.SeekingDescription),
	}
}

func artistPatch(req dto.ArtistPatchRequest) service.ArtistPatch {
	return service.ArtistPatch{
		Name:               req.Name,
		City:               req.City,
		State:              req.State,
		Phone:              req.Phone,
		Genres:             req.Genres,
		ImageLink:          req.ImageLink,
		FacebookLink:       req.FacebookLink,
		Website:            req.Website,
		SeekingVenues:      req.SeekingVenues,
		SeekingDescription: req.SeekingDescription,
	}
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
