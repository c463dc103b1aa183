package entity

type NoticeVariant string

const (
	NoticeDefault     NoticeVariant = "default"
	NoticeDestructive NoticeVariant = "destructive"
)

// Notice is a transient message for the user.
type Notice struct {
	Variant     NoticeVariant `json:"variant"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
}

func MissingImageNotice() Notice {
	return Notice{Variant: NoticeDestructive, Title: "No image selected", Description: "Please upload an image first"}
}

func UnsupportedTypeNotice() Notice {
	return Notice{Variant: NoticeDestructive, Title: "Unsupported file", Description: "Please choose a JPG, PNG or WEBP image"}
}

func ConvertedNotice() Notice {
	return Notice{Variant: NoticeDefault, Title: "Success!", Description: "Your 3D model is ready"}
}

func ConversionFailedNotice(reason string) Notice {
	return Notice{Variant: NoticeDestructive, Title: "Conversion failed", Description: reason}
}

func DownloadedNotice() Notice {
	return Notice{Variant: NoticeDefault, Title: "Downloaded", Description: "Your 3D model has been downloaded"}
}
