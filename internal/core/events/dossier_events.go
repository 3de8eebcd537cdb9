package events

const (
	EventDossierCreated       = "dossier.created"
	EventDossierStatusChanged = "dossier.status_changed"
	EventDossierDeleted       = "dossier.deleted"
	EventFormulaireSubmitted  = "formulaire.submitted"
)

func NewDossierCreatedEvent(dossierID, ownerID string) BaseEvent {
	return NewBaseEvent(EventDossierCreated, map[string]interface{}{
		"dossier_id": dossierID,
		"owner_id":   ownerID,
	})
}

func NewDossierStatusChangedEvent(dossierID, actorID, fromStatus, toStatus string) BaseEvent {
	return NewBaseEvent(EventDossierStatusChanged, map[string]interface{}{
		"dossier_id":  dossierID,
		"actor_id":    actorID,
		"from_status": fromStatus,
		"to_status":   toStatus,
	})
}

func NewDossierDeletedEvent(dossierID, actorID string) BaseEvent {
	return NewBaseEvent(EventDossierDeleted, map[string]interface{}{
		"dossier_id": dossierID,
		"actor_id":   actorID,
	})
}

func NewFormulaireSubmittedEvent(submissionID, userID, formType string) BaseEvent {
	return NewBaseEvent(EventFormulaireSubmitted, map[string]interface{}{
		"submission_id": submissionID,
		"user_id":       userID,
		"form_type":     formType,
	})
}
