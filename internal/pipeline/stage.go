package pipeline

import "fmt"

// Stage names one of the three representations an Image can be exported as.
type Stage int

const (
	StageColor Stage = iota
	StageGray
	StageEdges
)

var stageNames = map[Stage]string{
	StageColor: "color",
	StageGray:  "gray",
	StageEdges: "edges",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

// ParseStage maps a stage name to a Stage. "grayscale" is accepted as an
// alias for "gray" and "sobel" for "edges".
func ParseStage(name string) (Stage, error) {
	switch name {
	case "color", "colour", "rgb":
		return StageColor, nil
	case "gray", "grey", "grayscale":
		return StageGray, nil
	case "edges", "edge", "sobel":
		return StageEdges, nil
	}
	return 0, fmt.Errorf("unknown stage: %q (want color, gray or edges)", name)
}
