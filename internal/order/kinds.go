package order

// Category identifies the primary cleaning service chosen from the first menu.
type Category string

const (
	CategoryNone             Category = ""
	CategoryApartmentOrHouse Category = "apartment_or_house"
	CategoryPostRenovation   Category = "post_renovation"
	CategoryWindows          Category = "windows"
	CategoryDryCleaning      Category = "dry_cleaning"
	CategoryCommercial       Category = "commercial"
)

// Premises distinguishes an apartment from a house within CategoryApartmentOrHouse.
type Premises string

const (
	PremisesApartment Premises = "apartment"
	PremisesHouse     Premises = "house"
)

// AddOn is an optional extra service offered after the apartment/house base questions.
type AddOn string

const (
	AddOnOven      AddOn = "oven"
	AddOnHood      AddOn = "hood"
	AddOnMicrowave AddOn = "microwave"
	AddOnDishes    AddOn = "dishes"
	AddOnFridge    AddOn = "fridge"
	AddOnCabinets  AddOn = "cabinets"
	AddOnIroning   AddOn = "ironing"
	AddOnBalcony   AddOn = "balcony"
	AddOnLitterBox AddOn = "litter_box"
	AddOnWardrobe  AddOn = "wardrobe"
)

// AddOns lists every add-on in menu order.
var AddOns = []AddOn{
	AddOnOven, AddOnHood, AddOnMicrowave, AddOnDishes, AddOnFridge,
	AddOnCabinets, AddOnIroning, AddOnBalcony, AddOnLitterBox, AddOnWardrobe,
}

// DryItem is a furniture item that can be dry-cleaned.
type DryItem string

const (
	DrySofa      DryItem = "sofa"
	DryMattress  DryItem = "mattress"
	DryCarpet    DryItem = "carpet"
	DryChairs    DryItem = "chairs"
	DryHeadboard DryItem = "headboard"
)

// DryItems lists dry-cleaning items in companion priority order.
var DryItems = []DryItem{DrySofa, DryMattress, DryCarpet, DryChairs, DryHeadboard}

// SofaTier is a sofa seat-count tier.
type SofaTier string

const (
	Sofa2    SofaTier = "2"
	Sofa3    SofaTier = "3"
	Sofa4    SofaTier = "4"
	Sofa5to6 SofaTier = "5-6"
	Sofa7    SofaTier = "7"
)

// SofaTiers lists sofa tiers in ascending order.
var SofaTiers = []SofaTier{Sofa2, Sofa3, Sofa4, Sofa5to6, Sofa7}

// MattressSpec combines mattress size (single/double) with the number of cleaned sides.
type MattressSpec string

const (
	MattressSingleOneSide  MattressSpec = "1_1"
	MattressSingleTwoSides MattressSpec = "1_2"
	MattressDoubleOneSide  MattressSpec = "2_1"
	MattressDoubleTwoSides MattressSpec = "2_2"
)

// MattressSpecs lists the mattress matrix entries.
var MattressSpecs = []MattressSpec{
	MattressSingleOneSide, MattressSingleTwoSides, MattressDoubleOneSide, MattressDoubleTwoSides,
}
