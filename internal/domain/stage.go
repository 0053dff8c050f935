package domain

// Stage is a candidate's position in the hiring pipeline.
type Stage string

const (
	StageApplied     Stage = "applied"
	StageScreening   Stage = "screening"
	StageAIInterview Stage = "ai_interview"
	StagePhoneScreen Stage = "phone_screen"
	StageTechnical   Stage = "technical"
	StageOnsite      Stage = "onsite"
	StageOffer       Stage = "offer"
	StageHired       Stage = "hired"
	StageRejected    Stage = "rejected"
)

// StageOrder is the linear order used by "advance". Rejected is not part of it.
var StageOrder = []Stage{
	StageApplied,
	StageScreening,
	StageAIInterview,
	StagePhoneScreen,
	StageTechnical,
	StageOnsite,
	StageOffer,
	StageHired,
}

// IsValid reports whether s is a member of the stage enum.
func (s Stage) IsValid() bool {
	if s == StageRejected {
		return true
	}
	for _, st := range StageOrder {
		if st == s {
			return true
		}
	}
	return false
}

// IsClosed reports whether the candidate has left the active pipeline.
func (s Stage) IsClosed() bool {
	return s == StageHired || s == StageRejected
}

// NextStage returns the stage immediately after current, or false when current
// is hired, rejected or unknown.
//
// Stage changes themselves are not guarded by this order: any stage can be set
// from any other, so this helper is the only place the order is consulted.
func NextStage(current Stage) (Stage, bool) {
	for i, st := range StageOrder {
		if st == current {
			if i+1 < len(StageOrder) {
				return StageOrder[i+1], true
			}
			return "", false
		}
	}
	return "", false
}
