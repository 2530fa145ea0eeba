package dataprep

// Raw passenger columns.
const (
	ColPassengerID = "PassengerId"
	ColSurvived    = "Survived"
	ColPclass      = "Pclass"
	ColName        = "Name"
	ColSex         = "Sex"
	ColAge         = "Age"
	ColSibSp       = "SibSp"
	ColParch       = "Parch"
	ColTicket      = "Ticket"
	ColFare        = "Fare"
	ColCabin       = "Cabin"
	ColEmbarked    = "Embarked"
)

// Derived columns.
const (
	ColFamilySize         = "FamilySize"
	ColFamilySizeCategory = "FamilySizeCategory"
	ColTicketPrefix       = "TicketPrefix"
	ColTicketGroupSize    = "TicketGroupSize"
	ColTicketGroupSizeBin = "TicketGroupSizeBin"
	ColTitle              = "Title"
	ColSurname            = "Surname"
	ColSurnameGroupSize   = "SurnameGroupSize"
	ColDeck               = "Deck"
	ColFareBin            = "FareBin"
	ColAgeBin             = "AgeBin"
	ColSexPclass          = "Sex_Pclass"
)

// Sentinel categories substituted for absent or unparseable values.
const (
	SentinelMissing     = "Missing"
	SentinelNoPrefix    = "NoPrefix"
	SentinelOther       = "Other"
	SentinelRare        = "Rare"
	SentinelRareTitle   = "RareTitle"
	SentinelUnknownDeck = "UnknownDeck"
)
