package service

import "github.com/deppfellow/wedding-backend/internal/lib/media"

const (
	ruleCaption      = "omitempty,max=500"
	ruleLabel        = "omitempty,max=200"
	ruleRequiredName = "required,notblank,max=100"
	ruleOptionalName = "omitempty,notblank,max=100"
)

var (
	GalleryKind = MediaKind{
		Entity:   "Gallery photo",
		Folder:   "gallery",
		URLField: "imageUrl",
		Policy:   media.ImagePolicy,
	}

	BankKind = MediaKind{
		Entity:      "Bank",
		Folder:      "banks",
		URLField:    "logoUrl",
		Policy:      media.ImagePolicy,
		CreateRules: map[string]string{"bankName": ruleRequiredName},
		UpdateRules: map[string]string{"bankName": ruleOptionalName},
	}

	CoverKind = MediaKind{
		Entity:      "Cover image",
		Folder:      "cover",
		URLField:    "assetUrl",
		Policy:      media.ImagePolicy,
		CreateRules: map[string]string{"caption": ruleCaption},
		UpdateRules: map[string]string{"caption": ruleCaption},
	}

	// CoupleKind is a profile card: caption holds the name.
	CoupleKind = MediaKind{
		Entity:      "Profile",
		Folder:      "couple",
		URLField:    "assetUrl",
		Policy:      media.ImagePolicy,
		CreateRules: map[string]string{"caption": ruleRequiredName, "label": ruleLabel},
		UpdateRules: map[string]string{"caption": ruleOptionalName, "label": ruleLabel},
	}

	StoryKind = MediaKind{
		Entity:      "Story photo",
		Folder:      "stories",
		URLField:    "assetUrl",
		Policy:      media.ImagePolicy,
		CreateRules: map[string]string{"caption": ruleCaption},
		UpdateRules: map[string]string{"caption": ruleCaption},
	}

	GiftKind = MediaKind{
		Entity:      "Gift item",
		Folder:      "gifts",
		URLField:    "assetUrl",
		Policy:      media.ImagePolicy,
		CreateRules: map[string]string{"linkUrl": "required,url,max=2048", "label": ruleLabel},
		UpdateRules: map[string]string{"linkUrl": "omitempty,url,max=2048", "label": ruleLabel},
	}

	AudioKind = MediaKind{
		Entity:      "Audio",
		Folder:      "audio",
		URLField:    "assetUrl",
		Policy:      media.AudioPolicy,
		CreateRules: map[string]string{"label": ruleLabel},
		UpdateRules: map[string]string{"label": ruleLabel},
	}
)
