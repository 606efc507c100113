package entity

// Wire DTOs for the external service boundary.

// Generator service

type GenerateRequest struct {
	Prompt string `json:"prompt"`
}

type GenerateResponse struct {
	Text string `json:"text"`
}

type GenerateImageRequest struct {
	Prompt string `json:"prompt"`
}

type GenerateImageResponse struct {
	ImageBase64 string `json:"image_base64"`
}

// Translator service

type DetectTranslateRequest struct {
	Text string `json:"text"`
}

type DetectTranslateResponse struct {
	Text string `json:"text"`
	Lang string `json:"lang"`
}

type TranslateRequest struct {
	Text       string `json:"text"`
	TargetLang string `json:"target_lang"`
}

type TranslateResponse struct {
	Text string `json:"text"`
}

// Extractor service

type ExtractTextResponse struct {
	Text string `json:"text"`
}

// Video search provider (YouTube Data API shape)

type VideoSearchAPIResponse struct {
	Items []VideoSearchAPIItem `json:"items"`
}

type VideoSearchAPIItem struct {
	ID struct {
		VideoID string `json:"videoId"`
	} `json:"id"`
	Snippet struct {
		Title        string `json:"title"`
		ChannelTitle string `json:"channelTitle"`
		PublishedAt  string `json:"publishedAt"`
		Thumbnails   struct {
			High struct {
				URL string `json:"url"`
			} `json:"high"`
		} `json:"thumbnails"`
	} `json:"snippet"`
}
