package state

import "time"

// Player archetype labels produced by the scouting analysis.
const (
	ArchetypeScoringPlaymaker = "Scoring Playmaker"
	ArchetypeThreeAndD        = "3&D Wing"
	ArchetypeRimProtector     = "Rim Protector"
	ArchetypeFloorGeneral     = "Floor General"
	ArchetypeSlasher          = "Slasher"
	ArchetypeSpotUpShooter    = "Spot-Up Shooter"
	ArchetypeStretchBig       = "Stretch Big"
	ArchetypeTwoWayWing       = "Two-Way Wing"
	ArchetypeAthleticFinisher = "Athletic Finisher"
	ArchetypePostScorer       = "Post Scorer"
)

// Ordinal fit ratings for national team assessments.
const (
	FitStrong         = "Strong Fit"
	FitGood           = "Good Fit"
	FitDepth          = "Depth Consideration"
	FitDevelopmental  = "Developmental"
	FitNotRecommended = "Not Recommended"
)

// PlayerProfile is the scouting report header.
type PlayerProfile struct {
	Name         string `json:"name"`
	Position     string `json:"position,omitempty"`
	JerseyNumber string `json:"jersey_number,omitempty"`
	Height       string `json:"height,omitempty"`
	Age          int    `json:"age,omitempty"`
	CurrentTeam  string `json:"current_team"`
	League       string `json:"league"`
	PhotoUrl     string `json:"player_photo_url,omitempty"`
}

// Strength is one identified strength with a short title and detail.
type Strength struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Weakness mirrors Strength for areas of concern.
type Weakness struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// TrajectoryPoint is one season of the development trajectory.
type TrajectoryPoint struct {
	Season           string   `json:"season"`
	Ppg              float64  `json:"ppg"`
	TrendDescription string   `json:"trend_description"`
	PercentageChange *float64 `json:"percentage_change,omitempty"`
}

// NationalTeamAssessment rates the player's fit for one program context.
type NationalTeamAssessment struct {
	TeamType  string `json:"team_type"` // e.g. "Senior 5v5", "U21", "U19", "3x3"
	FitRating string `json:"fit_rating"`
	Rationale string `json:"rationale"`
}

// FinalRecommendation is the closing verdict of a scouting report.
type FinalRecommendation struct {
	VerdictTitle         string   `json:"verdict_title"`
	Summary              string   `json:"summary"`
	BestUseCases         []string `json:"best_use_cases"`
	OverallGradeDomestic string   `json:"overall_grade_domestic"`
	OverallGradeNational string   `json:"overall_grade_national"`
}

// ScoutingAnalysis carries only the LLM-generated portion of a report.
// Metadata and player data are attached by the scout node afterwards.
type ScoutingAnalysis struct {
	Archetype               string                   `json:"archetype"`
	ArchetypeDescription    string                   `json:"archetype_description"`
	Strengths               []Strength               `json:"strengths"`
	Weaknesses              []Weakness               `json:"weaknesses"`
	TrajectoryAnalysis      []TrajectoryPoint        `json:"trajectory_analysis"`
	TrajectorySummary       string                   `json:"trajectory_summary"`
	NationalTeamAssessments []NationalTeamAssessment `json:"national_team_assessments"`
	FinalRecommendation     FinalRecommendation      `json:"final_recommendation"`
}

// ScoutingReport is the complete player evaluation. It is immutable once
// produced; the rendered document reference is attached separately when
// rendering completes.
type ScoutingReport struct {
	ReportId    string    `json:"report_id"`
	GeneratedAt time.Time `json:"generated_at"`

	PlayerProfile PlayerProfile `json:"player_profile"`
	PlayerDetail  *PlayerDetail `json:"player_detail,omitempty"`

	Archetype            string     `json:"archetype"`
	ArchetypeDescription string     `json:"archetype_description"`
	Strengths            []Strength `json:"strengths"`
	Weaknesses           []Weakness `json:"weaknesses"`

	TrajectoryAnalysis []TrajectoryPoint `json:"trajectory_analysis"`
	TrajectorySummary  string            `json:"trajectory_summary"`

	NationalTeamAssessments []NationalTeamAssessment `json:"national_team_assessments"`
	FinalRecommendation     FinalRecommendation      `json:"final_recommendation"`
}
