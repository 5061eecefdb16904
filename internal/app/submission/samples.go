package submission

import (
	"time"

	"github.com/dalemusser/scivishub/internal/domain/models"
)

const day = 24 * time.Hour

// SampleSubmissions returns the demonstration submissions, timestamped
// relative to now.
func SampleSubmissions(now time.Time) []models.Submission {
	sample := func(id string, age time.Duration, c models.Contributor, d models.Dataset, t models.Task) models.Submission {
		return models.Submission{
			ID:          id,
			Timestamp:   models.FormatTimestamp(now.Add(-age)),
			Contributor: c,
			Dataset:     d,
			Task:        t,
			Files:       emptyFiles(),
		}
	}

	return []models.Submission{
		sample("sample1", 7*day,
			models.Contributor{Name: "Dr. Jane Smith", Email: "jane.smith@university.edu", Institution: "University of Notre Dame"},
			models.Dataset{
				Name:              "Cardiac MRI Isosurface",
				Description:       "High-resolution cardiac MRI scan for isosurface extraction and visualization",
				ApplicationDomain: "medical",
				AttributeType:     []string{"scalar-fields"},
			},
			models.Task{
				Description:        "Load the cardiac MRI dataset and extract isosurfaces at intensity value 150 to visualize the heart chambers. Apply appropriate color mapping.",
				EvaluationCriteria: "Correct isosurface value (10 pts), Chamber visibility (10 pts), Color mapping quality (5 pts)",
			}),
		sample("sample2", 3*day,
			models.Contributor{Name: "Prof. John Doe", Email: "john.doe@lab.gov", Institution: "Lawrence Livermore National Laboratory"},
			models.Dataset{
				Name:              "CFD Flow Analysis",
				Description:       "Computational fluid dynamics simulation with velocity and vorticity fields",
				ApplicationDomain: "simulation",
				AttributeType:     []string{"vector-fields"},
			},
			models.Task{
				Description:        "Compute vorticity from the velocity field and visualize using streamlines. Identify and track vortex cores across timesteps.",
				EvaluationCriteria: "Correct vorticity computation (15 pts), Streamline quality (10 pts), Vortex identification (10 pts)",
			}),
		sample("sample3", 1*day,
			models.Contributor{Name: "Dr. Emily Chen", Email: "emily.chen@medschool.edu", Institution: "Vanderbilt University Medical Center"},
			models.Dataset{
				Name:              "Brain Tumor Segmentation",
				Description:       "MRI brain scan with tumor region requiring segmentation and quantification",
				ApplicationDomain: "medical",
				AttributeType:     []string{"scalar-fields"},
			},
			models.Task{
				Description:        "Threshold the MRI data to segment tumor tissue (intensity > 200), extract the connected region, and compute tumor volume.",
				EvaluationCriteria: "Correct segmentation threshold (10 pts), Tumor extraction (15 pts), Volume measurement accuracy (10 pts)",
			}),
		sample("sample4", 5*day,
			models.Contributor{Name: "Dr. Maria Garcia", Email: "maria.garcia@research.org", Institution: "Max Planck Institute"},
			models.Dataset{
				Name:              "Molecular Stress Tensor Analysis",
				Description:       "Molecular dynamics simulation with stress tensor fields",
				ApplicationDomain: "molecular",
				AttributeType:     []string{"tensor-fields"},
			},
			models.Task{
				Description:        "Compute eigenvalues and eigenvectors of the stress tensor field. Visualize using tensor glyphs and track principal stress directions over time.",
				EvaluationCriteria: "Correct eigenvalue computation (15 pts), Tensor glyph visualization (10 pts), Temporal tracking (10 pts)",
			}),
	}
}
