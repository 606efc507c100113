package entity

// AnswerKind discriminates the payload shape of an Answer.
type AnswerKind string

const (
	AnswerKindText       AnswerKind = "text"
	AnswerKindWithImage  AnswerKind = "text_with_image"
	AnswerKindWithVideos AnswerKind = "text_with_videos"
)

// Answer is a tagged result variant: the response mode decides the payload
// shape at the type level, so callers never inspect the runtime shape.
//
// Text holds the answer for plain-text modes, and the description for the
// image and video variants. ImageBase64 is set only for AnswerKindWithImage,
// Videos only for AnswerKindWithVideos.
type Answer struct {
	Kind        AnswerKind
	Text        string
	ImageBase64 string
	Videos      []Video
}

// TextAnswer builds the plain-text variant.
func TextAnswer(text string) Answer {
	return Answer{Kind: AnswerKindText, Text: text}
}

// ImageAnswer builds the description-plus-image variant.
func ImageAnswer(description, imageBase64 string) Answer {
	return Answer{Kind: AnswerKindWithImage, Text: description, ImageBase64: imageBase64}
}

// VideosAnswer builds the description-plus-videos variant. A nil video list
// is normalized to an empty one so the JSON shape stays stable.
func VideosAnswer(description string, videos []Video) Answer {
	if videos == nil {
		videos = []Video{}
	}
	return Answer{Kind: AnswerKindWithVideos, Text: description, Videos: videos}
}
