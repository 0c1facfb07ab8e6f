package services

// InstituteService serves the fixed list of institutes offered in the
// event and student forms.
type InstituteService struct {
	institutes []string
}

// NewInstituteService creates a new institute service instance.
func NewInstituteService() *InstituteService {
	return &InstituteService{
		institutes: []string{
			"Indian Institute of Technology (IIT)",
			"National Institute of Technology (NIT)",
			"Indian Institute of Science (IISc)",
			"Delhi Technological University (DTU)",
			"Netaji Subhas University of Technology (NSUT)",
			"Jamia Millia Islamia",
			"University of Delhi",
			"Jawaharlal Nehru University (JNU)",
			"Amity University",
			"Manipal Institute of Technology",
			"Vellore Institute of Technology (VIT)",
			"Birla Institute of Technology and Science (BITS)",
			"Anna University",
			"SRM Institute of Science and Technology",
			"Lovely Professional University (LPU)",
			"Symbiosis International University",
			"Pune Institute of Computer Technology (PICT)",
			"College of Engineering, Pune (COEP)",
			"Visvesvaraya National Institute of Technology (VNIT)",
			"Indian Institute of Information Technology (IIIT)",
			"REVA University",
		},
	}
}

// GetInstitutes returns the institute names.
func (s *InstituteService) GetInstitutes() []string {
	return s.institutes
}
