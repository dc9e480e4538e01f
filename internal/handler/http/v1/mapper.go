package v1

import "github.com/garudaops/rescue_orchestration_system/internal/models"

// ReportToCaseModel converts an intake DTO into a fresh domain case.
func ReportToCaseModel(dto ReportAccidentRequest) *models.Case {
	return &models.Case{
		Reporter: models.Reporter{
			ID:               dto.ReporterID,
			Name:             dto.ReporterName,
			Phone:            dto.ReporterPhone,
			BloodGroup:       dto.BloodGroup,
			EmergencyContact: dto.EmergencyContact,
			EmergencyPhone:   dto.EmergencyPhone,
		},
		Location: models.Location{
			Latitude:  dto.Latitude,
			Longitude: dto.Longitude,
			Address:   dto.Address,
		},
		Description: dto.Description,
		Injuries:    dto.Injuries,
		MediaRefs:   dto.MediaRefs,
	}
}

// ModelToCaseResponse converts a domain case into the response DTO.
func ModelToCaseResponse(c *models.Case) *CaseResponse {
	resp := &CaseResponse{
		ID:           c.ID,
		ReporterID:   c.Reporter.ID,
		Latitude:     c.Location.Latitude,
		Longitude:    c.Location.Longitude,
		Address:      c.Location.Address,
		ReportedAt:   c.ReportedAt,
		Severity:     string(c.Severity),
		Description:  c.Description,
		Injuries:     c.Injuries,
		MediaRefs:    c.MediaRefs,
		Status:       string(c.Status),
		StatusDetail: c.StatusDetail,
		VehicleID:    c.VehicleID,
		FacilityID:   c.FacilityID,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
	for _, v := range c.Verdicts {
		resp.Verdicts = append(resp.Verdicts, VerdictResponse{
			ID:        v.ID,
			Severity:  string(v.Severity),
			Source:    v.Source,
			CreatedAt: v.CreatedAt,
		})
	}
	for _, st := range c.Timeline {
		resp.Timeline = append(resp.Timeline, StageResponse{
			ID:          st.ID,
			Ordinal:     st.Ordinal,
			Kind:        string(st.Kind),
			Label:       st.Label,
			Status:      string(st.Status),
			Timestamp:   st.Timestamp,
			Description: st.Description,
		})
	}
	return resp
}

// ModelsToCaseResponses converts a slice of cases.
func ModelsToCaseResponses(cases []*models.Case) []*CaseResponse {
	responses := make([]*CaseResponse, len(cases))
	for i, c := range cases {
		responses[i] = ModelToCaseResponse(c)
	}
	return responses
}

func ModelToVehicleResponse(v *models.Vehicle) *VehicleResponse {
	return &VehicleResponse{
		ID:           v.ID,
		PlateNumber:  v.PlateNumber,
		Operator:     v.Operator,
		Equipment:    v.Equipment,
		Availability: string(v.Availability),
		Latitude:     v.Location.Latitude,
		Longitude:    v.Location.Longitude,
		Address:      v.Location.Address,
	}
}

func ModelToFacilityResponse(f *models.Facility) *FacilityResponse {
	return &FacilityResponse{
		ID:            f.ID,
		Name:          f.Name,
		Latitude:      f.Location.Latitude,
		Longitude:     f.Location.Longitude,
		Address:       f.Location.Address,
		Specialties:   f.Specialties,
		CriticalFree:  f.CriticalFree,
		CriticalTotal: f.CriticalTotal,
		GeneralFree:   f.GeneralFree,
		GeneralTotal:  f.GeneralTotal,
		Rating:        f.Rating,
		Contact:       f.Contact,
	}
}

func ModelToNotificationResponse(n *models.Notification) *NotificationResponse {
	return &NotificationResponse{
		ID:        n.ID,
		CaseID:    n.CaseID,
		Recipient: string(n.Recipient),
		Title:     n.Title,
		Message:   n.Message,
		Status:    string(n.Status),
		CreatedAt: n.CreatedAt,
	}
}
