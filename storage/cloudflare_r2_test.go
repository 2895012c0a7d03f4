package storage

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestJoinPublicURL(t *testing.T) {
	Convey("Given a public base URL", t, func() {
		Convey("Without a path the key becomes the path", func() {
			base, err := parsePublicBaseURL("https://cdn.example.com")
			So(err, ShouldBeNil)
			So(joinPublicURL(base, "rankings/1/a.pdf"), ShouldEqual, "https://cdn.example.com/rankings/1/a.pdf")
		})

		Convey("Slashes on both sides are collapsed", func() {
			base, err := parsePublicBaseURL("https://cdn.example.com/files/")
			So(err, ShouldBeNil)
			So(joinPublicURL(base, "/rankings/1/a.pdf"), ShouldEqual, "https://cdn.example.com/files/rankings/1/a.pdf")
		})

		Convey("An empty key yields an empty URL", func() {
			base, err := parsePublicBaseURL("https://cdn.example.com")
			So(err, ShouldBeNil)
			So(joinPublicURL(base, ""), ShouldEqual, "")
		})
	})

	Convey("A base URL without a host is rejected", t, func() {
		_, err := parsePublicBaseURL("cdn.example.com/files")
		So(err, ShouldNotBeNil)
	})
}

func TestNewCloudflareR2Uploader(t *testing.T) {
	Convey("Missing settings are rejected", t, func() {
		_, err := NewCloudflareR2Uploader(context.Background(), CloudflareR2UploaderConfig{AccountID: "acc"})
		So(err, ShouldNotBeNil)
	})

	Convey("A complete configuration builds an uploader", t, func() {
		u, err := NewCloudflareR2Uploader(context.Background(), CloudflareR2UploaderConfig{
			AccountID:       "acc",
			AccessKeyID:     "key",
			SecretAccessKey: "secret",
			BucketName:      "peladas",
			PublicBaseURL:   "https://pub.example.com",
		})
		So(err, ShouldBeNil)
		So(u.GetPublicURL("rankings/3/x.pdf"), ShouldEqual, "https://pub.example.com/rankings/3/x.pdf")
	})
}
