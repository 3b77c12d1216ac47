package domain

import (
	"fmt"
	"strings"
)

// TaxCode is a product tax classification accepted by the API.
type TaxCode string

// Tax code constants.
const (
	TaxNone                  TaxCode = ""
	TaxAdultDiapers          TaxCode = "Adult Diapers"
	TaxAthleticClothing      TaxCode = "Athletic Clothing"
	TaxBabySupplies          TaxCode = "Baby Supplies"
	TaxBandages              TaxCode = "Bandages and First Aid Kits"
	TaxBathingSuits          TaxCode = "Bathing Suits"
	TaxJuice51To99           TaxCode = "Beverages with 51 to 99 Percent Juice"
	TaxBottledWater          TaxCode = "Bottled Water Plain"
	TaxBracesAndSupports     TaxCode = "Braces and Supports"
	TaxBreastPumps           TaxCode = "Breast Pumps"
	TaxCandy                 TaxCode = "Candy"
	TaxCandyWithFlour        TaxCode = "Candy with Flour"
	TaxCarSeats              TaxCode = "Car Seats"
	TaxCarbonatedSoftDrinks  TaxCode = "Carbonated Soft Drinks"
	TaxContactLensSolution   TaxCode = "Contact Lens Solution"
	TaxContraceptives        TaxCode = "Contraceptives"
	TaxCostumes              TaxCode = "Costumes"
	TaxDiabeticSupplies      TaxCode = "Diabetic Supplies"
	TaxDietarySupplements    TaxCode = "Dietary Supplements"
	TaxDisposableDiapers     TaxCode = "Disposable Infant Diapers"
	TaxDisposableWipes       TaxCode = "Disposable Wipes"
	TaxJuiceUnder50          TaxCode = "Drinks under 50 Percent Juice"
	TaxMedicalEquipment      TaxCode = "Durable Medical Equipment"
	TaxFeminineHygiene       TaxCode = "Feminine Hygiene Products"
	TaxFluorideToothpaste    TaxCode = "Fluoride Toothpaste"
	TaxGeneralClothing       TaxCode = "General Clothing"
	TaxGeneralGrocery        TaxCode = "General Grocery Items"
	TaxGenericTaxable        TaxCode = "Generic Taxable Product"
	TaxHandkerchiefs         TaxCode = "Handkerchiefs"
	TaxHelmets               TaxCode = "Helmets"
	TaxInfantClothing        TaxCode = "Infant Clothing"
	TaxMedicatedPersonalCare TaxCode = "Medicated Personal Care Items"
	TaxMobilityEquipment     TaxCode = "Mobility Equipment"
	TaxNonTaxable            TaxCode = "Non Taxable Product"
	TaxNonMotorizedBoats     TaxCode = "Non-Motorized Boats"
	TaxOralCare              TaxCode = "Oral Care Products"
	TaxOTCMedication         TaxCode = "OTC Medication"
	TaxOTCPetMeds            TaxCode = "OTC Pet Meds"
	TaxPaperProducts         TaxCode = "Paper Products"
	TaxPetFoods              TaxCode = "Pet Foods"
	TaxSafetyClothing        TaxCode = "Safety Clothing"
	TaxShoeInsoles           TaxCode = "Shoe Insoles"
	TaxSmokingCessation      TaxCode = "Smoking Cessation"
	TaxSparklingWater        TaxCode = "Sparkling Water"
	TaxSPFSuncare            TaxCode = "SPF Suncare Products"
	TaxSweatbands            TaxCode = "Sweatbands"
	TaxThermometers          TaxCode = "Thermometers"
	TaxToiletPaper           TaxCode = "Toilet Paper"
)

var taxCodes = []TaxCode{
	TaxAdultDiapers, TaxAthleticClothing, TaxBabySupplies, TaxBandages,
	TaxBathingSuits, TaxJuice51To99, TaxBottledWater, TaxBracesAndSupports,
	TaxBreastPumps, TaxCandy, TaxCandyWithFlour, TaxCarSeats,
	TaxCarbonatedSoftDrinks, TaxContactLensSolution, TaxContraceptives,
	TaxCostumes, TaxDiabeticSupplies, TaxDietarySupplements,
	TaxDisposableDiapers, TaxDisposableWipes, TaxJuiceUnder50,
	TaxMedicalEquipment, TaxFeminineHygiene, TaxFluorideToothpaste,
	TaxGeneralClothing, TaxGeneralGrocery, TaxGenericTaxable,
	TaxHandkerchiefs, TaxHelmets, TaxInfantClothing, TaxMedicatedPersonalCare,
	TaxMobilityEquipment, TaxNonTaxable, TaxNonMotorizedBoats, TaxOralCare,
	TaxOTCMedication, TaxOTCPetMeds, TaxPaperProducts, TaxPetFoods,
	TaxSafetyClothing, TaxShoeInsoles, TaxSmokingCessation, TaxSparklingWater,
	TaxSPFSuncare, TaxSweatbands, TaxThermometers, TaxToiletPaper,
}

// ParseTaxCode matches s case-insensitively against the known tax codes.
// An empty string yields TaxNone.
func ParseTaxCode(s string) (TaxCode, error) {
	if s == "" {
		return TaxNone, nil
	}
	for _, c := range taxCodes {
		if strings.EqualFold(string(c), s) {
			return c, nil
		}
	}
	return TaxNone, fmt.Errorf("product_tax_code %q: %w", s, ErrInvalidEnum)
}

// TaxCodes returns every known tax code.
func TaxCodes() []TaxCode {
	out := make([]TaxCode, len(taxCodes))
	copy(out, taxCodes)
	return out
}
