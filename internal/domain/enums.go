package domain

type LeaseStatus string

const (
	LeaseDraft      LeaseStatus = "DRAFT"
	LeaseActive     LeaseStatus = "ACTIVE"
	LeaseTerminated LeaseStatus = "TERMINATED"
)

type OccupancyStatus string

const (
	OccupancyDraft  OccupancyStatus = "DRAFT"
	OccupancyActive OccupancyStatus = "ACTIVE"
	OccupancyEnded  OccupancyStatus = "ENDED"
)

type RepairScopeType string

const (
	ScopeFloor      RepairScopeType = "FLOOR"
	ScopeCommonArea RepairScopeType = "COMMON_AREA"
)

type RepairStatus string

const (
	RepairDraft      RepairStatus = "DRAFT"
	RepairQuoted     RepairStatus = "QUOTED"
	RepairApproved   RepairStatus = "APPROVED"
	RepairInProgress RepairStatus = "IN_PROGRESS"
	RepairCompleted  RepairStatus = "COMPLETED"
	RepairAccepted   RepairStatus = "ACCEPTED"
	RepairRejected   RepairStatus = "REJECTED"
)

type AcceptanceResult string

const (
	AcceptancePass        AcceptanceResult = "PASS"
	AcceptanceFail        AcceptanceResult = "FAIL"
	AcceptanceConditional AcceptanceResult = "CONDITIONAL"
)

type LineageEventType string

const (
	LineageSplit LineageEventType = "SPLIT"
	LineageMerge LineageEventType = "MERGE"
)
