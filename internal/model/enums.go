package model

// Vocal styles
type VocalStyle string

const (
	VocalStyleAuto   VocalStyle = "auto"
	VocalStyleMale   VocalStyle = "male"
	VocalStyleFemale VocalStyle = "female"
	VocalStyleDuet   VocalStyle = "duet"
	VocalStyleChoir  VocalStyle = "choir"
)

var ValidVocalStyles = []VocalStyle{
	VocalStyleAuto, VocalStyleMale, VocalStyleFemale, VocalStyleDuet, VocalStyleChoir,
}

// Instrumental presets
type InstrumentalPreset string

const (
	PresetCinematic  InstrumentalPreset = "cinematic"
	PresetLofi       InstrumentalPreset = "lofi"
	PresetAmbient    InstrumentalPreset = "ambient"
	PresetJazz       InstrumentalPreset = "jazz"
	PresetElectronic InstrumentalPreset = "electronic"
	PresetAcoustic   InstrumentalPreset = "acoustic"
)

var ValidInstrumentalPresets = []InstrumentalPreset{
	PresetCinematic, PresetLofi, PresetAmbient,
	PresetJazz, PresetElectronic, PresetAcoustic,
}

// Structure section types
type StructureType string

const (
	StructureIntro     StructureType = "intro"
	StructureVerse     StructureType = "verse"
	StructureBuildup   StructureType = "buildup"
	StructureDrop      StructureType = "drop"
	StructureBreakdown StructureType = "breakdown"
	StructureBridge    StructureType = "bridge"
	StructureLoop      StructureType = "loop"
	StructureOutro     StructureType = "outro"
)

var ValidStructureTypes = []StructureType{
	StructureIntro, StructureVerse, StructureBuildup, StructureDrop,
	StructureBreakdown, StructureBridge, StructureLoop, StructureOutro,
}

// Warning levels for prompt validation
type WarningLevel string

const (
	WarningNone    WarningLevel = "none"
	WarningInfo    WarningLevel = "info"
	WarningWarning WarningLevel = "warning"
	WarningError   WarningLevel = "error"
)

// Feedback status derived from validation
type FeedbackStatus string

const (
	FeedbackValid   FeedbackStatus = "valid"
	FeedbackWarning FeedbackStatus = "warning"
	FeedbackError   FeedbackStatus = "error"
)

// Song lifecycle status
type SongStatus string

const (
	SongStatusQueued     SongStatus = "queued"
	SongStatusGenerating SongStatus = "generating"
	SongStatusReady      SongStatus = "ready"
	SongStatusFailed     SongStatus = "failed"
)

// Job status
type JobStatus string

const (
	JobStatusQueued    JobStatus = "queued"
	JobStatusRunning   JobStatus = "running"
	JobStatusSucceeded JobStatus = "succeeded"
	JobStatusFailed    JobStatus = "failed"
	JobStatusCanceled  JobStatus = "canceled"
)
