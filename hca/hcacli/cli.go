package hcacli

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/openhms/hca-app/conf"
	"github.com/openhms/hca-app/hca/billing"
	"github.com/openhms/hca-app/hca/claims"
	"github.com/openhms/hca-app/hca/codes"
	"github.com/openhms/hca-app/hca/insurance"
	"github.com/openhms/hca-app/hca/models"
	"github.com/openhms/hca-app/hca/testUtils"
	"github.com/openhms/hca-app/log"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

var version = "latest"

// GetApp assembles the command-line application. The entry point just
// runs it.
func GetApp() *cli.App {
	return setUpApp()
}

func setUpApp() *cli.App {
	app := cli.NewApp()
	app.Name = "hca"
	app.Usage = "Hospital claims adjudication utilities"
	app.Version = version

	var directory, providerKind string
	var seed int64

	directoryFlag := cli.StringFlag{
		Name:        "directory",
		Usage:       "Directory holding the reference code tables",
		Destination: &directory,
	}
	seedFlag := cli.Int64Flag{
		Name:        "seed",
		Usage:       "Seed for reproducible synthetic data",
		Destination: &seed,
	}
	providerFlag := cli.StringFlag{
		Name:        "provider",
		Usage:       "Insurance provider kind (government or private)",
		Value:       "government",
		Destination: &providerKind,
	}

	app.Commands = []cli.Command{
		{
			Name:     "import-codes",
			Category: "Reference data",
			Usage:    "Load the reference code tables and report counts",
			Flags:    []cli.Flag{directoryFlag},
			Action: func(c *cli.Context) error {
				registry, err := loadRegistry(directory)
				if err != nil {
					return err
				}
				fmt.Fprintf(app.Writer, "Imported %d diagnoses, %d procedures, %d medications\n",
					registry.DiagnosticCount(), registry.ProcedureCount(), registry.MedicationCount())
				return nil
			},
		},
		{
			Name:     "generate-bill",
			Category: "Synthetic data",
			Usage:    "Generate a bill for a synthetic insured patient",
			Flags:    []cli.Flag{directoryFlag, seedFlag, providerFlag},
			Action: func(c *cli.Context) error {
				bill, _, _, err := generateBill(directory, providerKind, seed)
				if err != nil {
					return err
				}
				return printJSON(app, bill)
			},
		},
		{
			Name:     "adjudicate",
			Category: "Synthetic data",
			Usage:    "Generate a bill, raise a claim, and run it through the provider",
			Flags:    []cli.Flag{directoryFlag, seedFlag, providerFlag},
			Action: func(c *cli.Context) error {
				bill, provider, patient, err := generateBill(directory, providerKind, seed)
				if err != nil {
					return err
				}

				claim, err := claims.CreateNew(bill, bill.InsurancePolicy().Provider,
					bill.InsurancePolicy(), patient, bill.TotalAmount())
				if err != nil {
					return err
				}
				if err := claim.Submit(); err != nil {
					return err
				}
				approved, err := provider.ProcessClaim(patient, claim)
				if err != nil {
					return err
				}

				if approved {
					fmt.Fprintf(app.Writer, "Claim %s APPROVED, payable %s\n",
						claim.ClaimID(), claim.PayableAmount())
				} else {
					fmt.Fprintf(app.Writer, "Claim %s REJECTED: %s\n",
						claim.ClaimID(), claim.Comments())
				}
				return printJSON(app, claim)
			},
		},
	}
	return app
}

func loadRegistry(directory string) (*codes.Registry, error) {
	if directory == "" {
		directory = conf.GetEnv("HCA_REF_DATA_DIR")
	}
	if directory == "" {
		return nil, errors.New("no reference data directory; pass --directory or set HCA_REF_DATA_DIR")
	}
	return codes.LoadRegistry(directory)
}

func newProvider(kind string, rng *rand.Rand) (insurance.InsuranceProvider, error) {
	switch kind {
	case "government":
		return insurance.NewGovernmentProvider(), nil
	case "private":
		return insurance.NewPrivateProvider("Shield Mutual", rng), nil
	default:
		return nil, errors.Errorf("unknown provider kind %q", kind)
	}
}

// generateBill builds the synthetic patient, policy, visit, and bill
// shared by generate-bill and adjudicate.
func generateBill(directory, providerKind string, seed int64) (*billing.Bill, insurance.InsuranceProvider, models.Patient, error) {
	var patient models.Patient

	registry, err := loadRegistry(directory)
	if err != nil {
		return nil, nil, patient, err
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	provider, err := newProvider(providerKind, rng)
	if err != nil {
		return nil, nil, patient, err
	}

	patient = testUtils.RandomPatient(rng)
	if !provider.IsEligible(patient) {
		patient.ResidentialStatus = models.Citizen
	}

	insurancePolicy, err := provider.PatientPolicy(patient)
	if err != nil {
		return nil, nil, patient, err
	}
	if insurancePolicy == nil {
		return nil, nil, patient, errors.Errorf("provider %s issued no policy", provider.Name())
	}

	visit, err := testUtils.CompatibleVisit(registry, insurancePolicy.Coverage,
		patient, testUtils.RandomDoctor(rng), rng)
	if err != nil {
		return nil, nil, patient, err
	}

	bill, err := billing.NewBillBuilder().
		WithPatient(patient).
		WithVisit(visit).
		WithInsurancePolicy(insurancePolicy).
		Build()
	if err != nil {
		return nil, nil, patient, err
	}
	if err := bill.Finalize(); err != nil {
		return nil, nil, patient, err
	}

	log.CLI.WithField("billId", bill.BillID()).
		Infof("Generated bill totalling %s for patient %s", bill.TotalAmount(), patient.PatientID)
	return bill, provider, patient, nil
}

func printJSON(app *cli.App, v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(app.Writer, string(out))
	return nil
}
